package spatial

// NodeIndex addresses a node inside a tree's arena, with a sentinel
// "invalid" value standing in for an absent child or root. It is a plain
// Go int.
type NodeIndex int

// InvalidNodeIndex marks an absent child or an unset root.
const InvalidNodeIndex NodeIndex = -1

func (n NodeIndex) Valid() bool { return n >= 0 }
