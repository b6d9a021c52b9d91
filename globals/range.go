package globals

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/scipsyntax/rng"
)

// nodeRange converts a tree-sitter node's extent to rng.Range, the Go
// counterpart of scip-treesitter's `NodeToScipRange`/`From<Node> for
// PackedRange`.
func nodeRange(n *sitter.Node) rng.Range {
	start := n.StartPoint()
	end := n.EndPoint()
	return rng.New(int(start.Row), int(start.Column), int(end.Row), int(end.Column))
}
