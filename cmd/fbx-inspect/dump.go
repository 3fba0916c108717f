package main

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Carmen-Shannon/fbx-go"
	"github.com/Carmen-Shannon/fbx-go/dom"
)

// objectDump is the YAML shape of one dumped object.
type objectDump struct {
	ID         int64          `yaml:"id"`
	Kind       string         `yaml:"kind"`
	Name       string         `yaml:"name,omitempty"`
	Class      string         `yaml:"class,omitempty"`
	Subclass   string         `yaml:"subclass,omitempty"`
	Parents    []int64        `yaml:"parents,omitempty"`
	Children   []int64        `yaml:"children,omitempty"`
	Properties map[string]any `yaml:"properties,omitempty"`
}

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Dump the object graph as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := fbx.Load(args[0])
		if err != nil {
			return err
		}

		dumps := make([]objectDump, 0)
		for _, obj := range doc.Objects() {
			d := objectDump{
				ID:       int64(obj.ID()),
				Kind:     dom.Classify(obj).Kind().String(),
				Name:     obj.Name(),
				Class:    obj.Class(),
				Subclass: obj.Subclass(),
			}
			for _, p := range obj.Parents() {
				d.Parents = append(d.Parents, int64(p.ID()))
			}
			for _, c := range obj.Children() {
				d.Children = append(d.Children, int64(c.ID()))
			}
			d.Properties = dumpProperties(obj)
			dumps = append(dumps, d)
		}

		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(dumps)
	},
}

// dumpProperties renders an object's visible properties with their raw
// attribute values.
func dumpProperties(obj dom.Object) map[string]any {
	handles := obj.Properties().Handles()
	if len(handles) == 0 {
		return nil
	}
	out := make(map[string]any, len(handles))
	for _, h := range handles {
		raw := h.Raw()
		values := make([]any, 0, len(raw))
		for _, a := range raw {
			values = append(values, a.Value())
		}
		if len(values) == 1 {
			out[h.Name()] = values[0]
		} else {
			out[h.Name()] = values
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
