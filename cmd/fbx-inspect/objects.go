package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Carmen-Shannon/fbx-go"
	"github.com/Carmen-Shannon/fbx-go/dom"
)

var objectsCmd = &cobra.Command{
	Use:   "objects <file>",
	Short: "List every object in the document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := fbx.Load(args[0])
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tKIND\tNAME\tCLASS\tSUBCLASS")
		for _, obj := range doc.Objects() {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				obj.ID(), dom.Classify(obj).Kind(), obj.Name(), obj.Class(), obj.Subclass())
		}
		return w.Flush()
	},
}

var hierarchyCmd = &cobra.Command{
	Use:   "hierarchy <file>",
	Short: "Print the model hierarchy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := fbx.Load(args[0])
		if err != nil {
			return err
		}
		for _, m := range doc.RootModels() {
			printModel(m, 0)
		}
		return nil
	},
}

func printModel(m dom.Model, depth int) {
	for i := 0; i < depth; i++ {
		fmt.Print("  ")
	}
	name := m.Name()
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Printf("%s [%s, id=%d]\n", name, m.Subclass(), m.ID())
	for _, child := range m.ChildModels() {
		printModel(child, depth+1)
	}
}

func init() {
	rootCmd.AddCommand(objectsCmd)
	rootCmd.AddCommand(hierarchyCmd)
}
