package drawer

import (
	"time"

	"github.com/askiada/go-cichain/pkg/chain/measure"
	"github.com/askiada/go-cichain/pkg/chain/model"
)

// Drawer is an interface that defines the methods for drawing a chain.
type Drawer interface {
	// AddLink adds a link to the chain drawer.
	AddLink(linkName string) error
	// AddEdge adds an edge between two consecutive links.
	AddEdge(parentLinkName, childLinkName string) error
	// RemoveEdge removes the edge between two links.
	RemoveEdge(parentLinkName, childLinkName string) error
	// MarkLink highlights the link that ended a run.
	MarkLink(linkName string, state model.State) error
	// SetTotalTime sets the total time for the link.
	SetTotalTime(linkName string, totalTime time.Duration) error
	// AddMeasure adds a measure to the chain drawer.
	AddMeasure(measure measure.Measure) error
	// Draw creates a file with the chain graph.
	Draw() error
}
