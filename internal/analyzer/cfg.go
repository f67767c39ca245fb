package analyzer

import (
	"fmt"

	"github.com/ludo-technologies/jscan/internal/parser"
)

// EdgeType classifies the control-flow relationship a CFG edge represents.
type EdgeType int

const (
	EdgeNormal EdgeType = iota
	EdgeCondTrue
	EdgeCondFalse
	EdgeException
	EdgeLoop
	EdgeBreak
	EdgeContinue
	EdgeReturn
)

// String renders an EdgeType the way control-flow graph dumps do.
func (e EdgeType) String() string {
	switch e {
	case EdgeNormal:
		return "normal"
	case EdgeCondTrue:
		return "true"
	case EdgeCondFalse:
		return "false"
	case EdgeException:
		return "exception"
	case EdgeLoop:
		return "loop"
	case EdgeBreak:
		return "break"
	case EdgeContinue:
		return "continue"
	case EdgeReturn:
		return "return"
	default:
		return "unknown"
	}
}

// Edge is a directed control-flow edge between two basic blocks.
type Edge struct {
	From *BasicBlock
	To   *BasicBlock
	Type EdgeType
}

// BasicBlock is a maximal straight-line run of statements: control only
// enters at the top and leaves at the bottom.
type BasicBlock struct {
	ID           string
	Label        string
	Statements   []*parser.Node
	Predecessors []*Edge
	Successors   []*Edge
	IsEntry      bool
	IsExit       bool
}

// NewBasicBlock creates an empty block with the given ID.
func NewBasicBlock(id string) *BasicBlock {
	return &BasicBlock{ID: id}
}

// AddStatement appends stmt to the block, ignoring nil.
func (b *BasicBlock) AddStatement(stmt *parser.Node) {
	if stmt == nil {
		return
	}
	b.Statements = append(b.Statements, stmt)
}

// AddSuccessor links b to to with an edge of the given type, recording the
// edge on both sides.
func (b *BasicBlock) AddSuccessor(to *BasicBlock, edgeType EdgeType) *Edge {
	edge := &Edge{From: b, To: to, Type: edgeType}
	b.Successors = append(b.Successors, edge)
	to.Predecessors = append(to.Predecessors, edge)
	return edge
}

// RemoveSuccessor removes every edge from b to to, on both sides.
func (b *BasicBlock) RemoveSuccessor(to *BasicBlock) {
	kept := b.Successors[:0]
	for _, edge := range b.Successors {
		if edge.To != to {
			kept = append(kept, edge)
		}
	}
	b.Successors = kept

	keptPred := to.Predecessors[:0]
	for _, edge := range to.Predecessors {
		if edge.From != b {
			keptPred = append(keptPred, edge)
		}
	}
	to.Predecessors = keptPred
}

// IsEmpty reports whether the block holds no statements.
func (b *BasicBlock) IsEmpty() bool {
	return len(b.Statements) == 0
}

// String renders a block the way a CFG dump would.
func (b *BasicBlock) String() string {
	if b.IsEntry {
		return fmt.Sprintf("[ENTRY: %s]", b.Label)
	}
	if b.IsExit {
		return fmt.Sprintf("[EXIT: %s]", b.Label)
	}
	label := b.Label
	if label == "" {
		label = b.ID
	}
	return fmt.Sprintf("[%s: %d stmts]", label, len(b.Statements))
}

// CFGVisitor receives blocks and edges during a CFG traversal; returning
// false from either callback stops the walk early.
type CFGVisitor interface {
	VisitBlock(block *BasicBlock) bool
	VisitEdge(edge *Edge) bool
}

// CFG is a function's control flow graph: a set of basic blocks connected
// by directed edges, with single entry and exit blocks.
type CFG struct {
	Name   string
	Blocks map[string]*BasicBlock
	Entry  *BasicBlock
	Exit   *BasicBlock
	nextID int
}

// NewCFG creates a CFG for the named function, pre-populated with
// connected-nowhere entry and exit blocks.
func NewCFG(name string) *CFG {
	cfg := &CFG{
		Name:   name,
		Blocks: make(map[string]*BasicBlock),
	}

	entry := NewBasicBlock(cfg.nextBlockID())
	entry.IsEntry = true
	entry.Label = "ENTRY"

	exit := NewBasicBlock(cfg.nextBlockID())
	exit.IsExit = true
	exit.Label = "EXIT"

	cfg.Entry = entry
	cfg.Exit = exit
	cfg.Blocks[entry.ID] = entry
	cfg.Blocks[exit.ID] = exit

	return cfg
}

func (c *CFG) nextBlockID() string {
	id := fmt.Sprintf("bb%d", c.nextID)
	c.nextID++
	return id
}

// CreateBlock allocates a new block with a unique ID, adds it to the CFG
// and returns it.
func (c *CFG) CreateBlock(label string) *BasicBlock {
	block := NewBasicBlock(c.nextBlockID())
	block.Label = label
	c.AddBlock(block)
	return block
}

// AddBlock registers an already-constructed block with the CFG, ignoring
// nil.
func (c *CFG) AddBlock(block *BasicBlock) {
	if block == nil {
		return
	}
	c.Blocks[block.ID] = block
}

// RemoveBlock deletes block from the CFG, disconnecting it from every
// neighbor first. The entry and exit blocks are never removed.
func (c *CFG) RemoveBlock(block *BasicBlock) {
	if block == nil || block == c.Entry || block == c.Exit {
		return
	}

	for _, edge := range append([]*Edge{}, block.Predecessors...) {
		edge.From.RemoveSuccessor(block)
	}
	for _, edge := range append([]*Edge{}, block.Successors...) {
		block.RemoveSuccessor(edge.To)
	}

	delete(c.Blocks, block.ID)
}

// ConnectBlocks adds a from->to edge of the given type, returning nil if
// either block is nil.
func (c *CFG) ConnectBlocks(from, to *BasicBlock, edgeType EdgeType) *Edge {
	if from == nil || to == nil {
		return nil
	}
	return from.AddSuccessor(to, edgeType)
}

// GetBlock looks up a block by ID, returning nil if it isn't in the CFG.
func (c *CFG) GetBlock(id string) *BasicBlock {
	return c.Blocks[id]
}

// Size returns the number of blocks in the CFG.
func (c *CFG) Size() int {
	return len(c.Blocks)
}

// String renders the CFG the way a debug dump would.
func (c *CFG) String() string {
	return fmt.Sprintf("CFG(%s): %d blocks", c.Name, c.Size())
}

// Walk performs a depth-first traversal from Entry, visiting each block and
// edge at most once. Either visitor callback returning false stops that
// branch of the walk.
func (c *CFG) Walk(visitor CFGVisitor) {
	if c.Entry == nil {
		return
	}
	visited := make(map[string]bool)
	c.walkDFS(c.Entry, visitor, visited)
}

func (c *CFG) walkDFS(block *BasicBlock, visitor CFGVisitor, visited map[string]bool) {
	if block == nil || visited[block.ID] {
		return
	}
	visited[block.ID] = true

	if !visitor.VisitBlock(block) {
		return
	}

	for _, edge := range block.Successors {
		if !visitor.VisitEdge(edge) {
			continue
		}
		c.walkDFS(edge.To, visitor, visited)
	}
}

// BreadthFirstWalk performs a breadth-first traversal from Entry. Either
// visitor callback returning false stops the walk entirely.
func (c *CFG) BreadthFirstWalk(visitor CFGVisitor) {
	if c.Entry == nil {
		return
	}

	visited := map[string]bool{c.Entry.ID: true}
	queue := []*BasicBlock{c.Entry}

	for len(queue) > 0 {
		block := queue[0]
		queue = queue[1:]

		if !visitor.VisitBlock(block) {
			return
		}

		for _, edge := range block.Successors {
			if !visitor.VisitEdge(edge) {
				return
			}
			if !visited[edge.To.ID] {
				visited[edge.To.ID] = true
				queue = append(queue, edge.To)
			}
		}
	}
}
