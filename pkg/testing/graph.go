package testing

// Node is a labeled vertex of a Graph.
type Node struct {
	Label   string
	parents []*Node
}

// AddParent records that n depends on p.
func (n *Node) AddParent(p *Node) {
	n.parents = append(n.parents, p)
}

func (n *Node) String() string {
	return n.Label
}

// Graph is a hand-built dependency graph. Nodes keep creation order.
type Graph struct {
	nodes  []*Node
	labels map[string]*Node
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{labels: make(map[string]*Node)}
}

// Node returns the node with the given label, creating it on first use.
func (g *Graph) Node(label string) *Node {
	if n, ok := g.labels[label]; ok {
		return n
	}
	n := &Node{Label: label}
	g.labels[label] = n
	g.nodes = append(g.nodes, n)
	return n
}

// Nodes returns every node in creation order.
func (g *Graph) Nodes() []*Node {
	return append([]*Node(nil), g.nodes...)
}

// Select returns the nodes with the given labels, in argument order.
func (g *Graph) Select(labels ...string) []*Node {
	out := make([]*Node, len(labels))
	for i, l := range labels {
		out[i] = g.Node(l)
	}
	return out
}

// Parents returns the parents of n. It has the shape toposort.Layers expects.
func (g *Graph) Parents(n *Node) []*Node {
	return n.parents
}

// Labels maps sorted layers to their labels.
func Labels(layers [][]*Node) [][]string {
	out := make([][]string, len(layers))
	for i, layer := range layers {
		out[i] = LoopLabels(layer)
	}
	return out
}

// LoopLabels maps one loop or layer to labels.
func LoopLabels(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Label
	}
	return out
}
