package drawer

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/template"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-cichain/internal/store"
	"github.com/askiada/go-cichain/pkg/chain/measure"
	"github.com/askiada/go-cichain/pkg/chain/model"
)

// DOTDrawer is a drawer that creates a DOT file with the chain graph.
type DOTDrawer struct {
	graph       graph.Graph[string, string]
	store       store.LinkStore[string, string]
	dotFileName string
	marked      string
}

// NewDOTDrawer creates a new DOT drawer.
func NewDOTDrawer(dotFileName string) *DOTDrawer {
	links := store.NewMemoryStore[string, string]()

	return &DOTDrawer{
		dotFileName: dotFileName,
		store:       links,
		graph:       graph.NewWithStore(graph.StringHash, links, graph.Directed()),
	}
}

// AddLink adds a link to the chain graph.
func (d *DOTDrawer) AddLink(name string) error {
	err := d.graph.AddVertex(name)
	if err != nil {
		return errors.Wrapf(err, "unable to add vertex %s", name)
	}

	return nil
}

// AddEdge adds an edge between parent and child links.
func (d *DOTDrawer) AddEdge(parentName, childName string) error {
	err := d.graph.AddEdge(parentName, childName)
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentName, childName)
	}

	return nil
}

// RemoveEdge removes the edge between parent and child links.
func (d *DOTDrawer) RemoveEdge(parentName, childName string) error {
	err := d.graph.RemoveEdge(parentName, childName)
	if err != nil {
		return errors.Wrapf(err, "unable to remove edge from %s to %s", parentName, childName)
	}

	return nil
}

// Draw writes the chain graph to the DOT file.
func (d *DOTDrawer) Draw() error {
	file, err := os.Create(d.dotFileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.dotFileName)
	}
	defer file.Close()

	err = d.Render(file)
	if err != nil {
		return errors.Wrapf(err, "unable to write dot file %s", d.dotFileName)
	}

	return nil
}

// Render writes the chain graph in DOT format.
func (d *DOTDrawer) Render(wrt io.Writer) error {
	return dot(d.graph, wrt)
}

// SetTotalTime sets the total time for the link.
func (d *DOTDrawer) SetTotalTime(linkName string, totalTime time.Duration) error {
	err := d.store.UpdateVertex(linkName, func(properties *graph.VertexProperties) {
		properties.Attributes["xlabel"] = round(totalTime).String()
	})
	if err != nil {
		return errors.Wrapf(err, "unable to update %s vertex properties", linkName)
	}

	return nil
}

var stateColors = map[model.State]string{
	model.StateBroken: "orange",
	model.StateFailed: "red",
}

// MarkLink outlines the link that ended the latest broken or failed run.
func (d *DOTDrawer) MarkLink(linkName string, state model.State) error {
	color, ok := stateColors[state]

	err := d.store.UpdateVertex(linkName, func(properties *graph.VertexProperties) {
		if ok {
			properties.Attributes["color"] = color
			properties.Attributes["penwidth"] = "2"
		}
	})
	if err != nil {
		return errors.Wrapf(err, "unable to update %s vertex properties", linkName)
	}

	if d.marked != "" && d.marked != linkName {
		err = d.store.UpdateVertex(d.marked, func(previous *graph.VertexProperties) {
			delete(previous.Attributes, "color")
			delete(previous.Attributes, "penwidth")
		})
		if err != nil {
			return errors.Wrapf(err, "unable to update %s vertex properties", d.marked)
		}
	}

	d.marked = linkName

	return nil
}

const maxRGB = 240

// AddMeasure labels every link with its average duration and colours it from blue (fastest) to red (slowest).
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	metrics := msr.AllMetrics()

	var minValue, maxValue time.Duration

	first := true
	for name, mt := range metrics {
		if name == model.StartLink.Name || name == model.EndLink.Name || mt.Total() == 0 {
			continue
		}

		avg := mt.AVGDuration()
		if first || avg < minValue {
			minValue = avg
		}
		if first || avg > maxValue {
			maxValue = avg
		}

		first = false
	}

	for name, mt := range metrics {
		if name == model.StartLink.Name || name == model.EndLink.Name || mt.Total() == 0 {
			continue
		}

		avg := mt.AVGDuration()
		fraction := 1.0
		if maxValue > minValue {
			fraction = float64(avg-minValue) / float64(maxValue-minValue)
		}

		red := maxRGB * fraction
		blue := maxRGB - red

		color, err := colors.RGB(uint8(red), 0, uint8(blue)) //nolint
		if err != nil {
			return errors.Wrap(err, "unable to get colour")
		}

		err = d.store.UpdateVertex(name, func(properties *graph.VertexProperties) {
			properties.Attributes["xlabel"] = fmt.Sprintf("avg: %s, runs: %d", avg, mt.Total())
			properties.Attributes["fontcolor"] = color.ToHEX().String()
		})
		if err != nil {
			return errors.Wrapf(err, "unable to update %s vertex properties", name)
		}
	}

	return nil
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Second:
		return d.Round(time.Millisecond)
	case d > time.Millisecond:
		return d.Round(time.Microsecond)
	}

	return d
}

//nolint:lll //this is a template
const dotTemplate = `strict {{.GraphType}} {
	{{range $k, $v := .Attributes}}
		{{$k}}="{{$v}}";
	{{end}}
	{{range $s := .Statements}}
		"{{.Source}}" {{if .Target}}{{$.EdgeOperator}} "{{.Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.EdgeWeight}} ]{{else}}[ {{range $k, $v := .HTMLAttributes}}{{$k}}={{$v}}, {{end}} {{range $k, $v := .SourceAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.SourceWeight}} ]{{end}};
	{{end}}
	}
	`

type description struct {
	GraphType    string
	Attributes   map[string]string
	EdgeOperator string
	Statements   []statement
}

type statement struct {
	Source           string
	Target           string
	SourceAttributes map[string]string
	HTMLAttributes   map[string]string
	EdgeAttributes   map[string]string
	SourceWeight     int
	EdgeWeight       int
}

func dot(g graph.Graph[string, string], wrt io.Writer, options ...func(*description)) error {
	desc, err := generateDOT(g, options...)
	if err != nil {
		return errors.Wrap(err, "failed to generate DOT description")
	}

	return renderDOT(wrt, desc)
}

// GraphAttribute is a functional option for the DOT description.
func GraphAttribute(key, value string) func(*description) {
	return func(d *description) {
		d.Attributes[key] = value
	}
}

// generateDOT describes gra with statements sorted by source then target, so the output is stable.
func generateDOT(gra graph.Graph[string, string], options ...func(*description)) (description, error) {
	desc := description{
		GraphType:    "graph",
		Attributes:   map[string]string{"rankdir": "LR"},
		EdgeOperator: "--",
		Statements:   make([]statement, 0),
	}

	for _, option := range options {
		option(&desc)
	}

	if gra.Traits().IsDirected {
		desc.GraphType = "digraph"
		desc.EdgeOperator = "->"
	}

	adjacencyMap, err := gra.AdjacencyMap()
	if err != nil {
		return desc, errors.Wrap(err, "unable to get adjacency map")
	}

	for vertex, adjacencies := range adjacencyMap {
		_, sourceProperties, err := gra.VertexWithProperties(vertex)
		if err != nil {
			return desc, errors.Wrap(err, "unable to get vertex properties")
		}

		htmlAttributes := make(map[string]string)
		sourceAttributes := make(map[string]string, len(sourceProperties.Attributes))
		for k, v := range sourceProperties.Attributes {
			sourceAttributes[k] = v
		}

		if xlabel, ok := sourceAttributes["xlabel"]; ok {
			htmlAttributes["label"] = fmt.Sprintf(`<%s <BR /> <FONT POINT-SIZE="12">%s</FONT>>`, vertex, xlabel)

			delete(sourceAttributes, "xlabel")
		}

		desc.Statements = append(desc.Statements, statement{
			Source:           vertex,
			SourceWeight:     sourceProperties.Weight,
			SourceAttributes: sourceAttributes,
			HTMLAttributes:   htmlAttributes,
		})

		for adjacency, edge := range adjacencies {
			desc.Statements = append(desc.Statements, statement{
				Source:         vertex,
				Target:         adjacency,
				EdgeWeight:     edge.Properties.Weight,
				EdgeAttributes: edge.Properties.Attributes,
			})
		}
	}

	sort.Slice(desc.Statements, func(i, j int) bool {
		if desc.Statements[i].Source != desc.Statements[j].Source {
			return desc.Statements[i].Source < desc.Statements[j].Source
		}

		return desc.Statements[i].Target < desc.Statements[j].Target
	})

	return desc, nil
}

func renderDOT(wrt io.Writer, desc description) error {
	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return errors.Wrap(err, "failed to parse template")
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var _ Drawer = (*DOTDrawer)(nil)
