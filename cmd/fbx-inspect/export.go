package main

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Carmen-Shannon/fbx-go"
	"github.com/Carmen-Shannon/fbx-go/dom"
	"github.com/Carmen-Shannon/fbx-go/export/gltf"
)

var (
	exportOutput    string
	exportSimplify  float64
	exportWorkers   int
	exportNoTexture bool
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Convert the scene to glTF",
	Long: `Converts the loaded scene to glTF 2.0. The output format follows the
output file extension: .glb writes a binary container, anything else writes
JSON with an embedded buffer.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := fbx.Load(args[0])
		if err != nil {
			return err
		}

		options := []gltf.ExporterBuilderOption{
			gltf.WithTextureEmbedding(!exportNoTexture),
		}
		if exportSimplify > 0 {
			options = append(options, gltf.WithSimplification(exportSimplify))
		}
		if exportWorkers > 0 {
			options = append(options, gltf.WithWorkers(exportWorkers))
		}
		exporter := gltf.NewExporter(options...)

		if strings.EqualFold(filepath.Ext(exportOutput), ".glb") {
			return exporter.ExportBinary(doc, exportOutput)
		}
		return exporter.ExportFile(doc, exportOutput)
	},
}

var (
	thumbsDir  string
	thumbsSize uint
)

var thumbsCmd = &cobra.Command{
	Use:   "thumbs <file>",
	Short: "Extract embedded textures as PNG thumbnails",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := fbx.Load(args[0])
		if err != nil {
			return err
		}
		if err := os.MkdirAll(thumbsDir, 0o755); err != nil {
			return err
		}

		written := 0
		for _, obj := range doc.Objects() {
			video, ok := dom.Classify(obj).(dom.Video)
			if !ok {
				continue
			}
			img, err := video.Thumbnail(thumbsSize)
			if err != nil {
				// Videos without embedded content are expected; skip them.
				continue
			}
			name := video.Name()
			if name == "" {
				name = fmt.Sprintf("video_%d", video.ID())
			}
			path := filepath.Join(thumbsDir, sanitizeFileName(name)+".png")
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := png.Encode(f, img); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			written++
		}
		fmt.Printf("wrote %d thumbnails to %s\n", written, thumbsDir)
		return nil
	},
}

// sanitizeFileName replaces path separators and other awkward characters in
// object names used as file names.
func sanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		default:
			return r
		}
	}, name)
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "out.glb", "output file path")
	exportCmd.Flags().Float64Var(&exportSimplify, "simplify", 0, "triangle keep ratio in (0,1); 0 disables decimation")
	exportCmd.Flags().IntVar(&exportWorkers, "workers", 0, "parallel conversion workers; 0 uses the default")
	exportCmd.Flags().BoolVar(&exportNoTexture, "no-textures", false, "skip embedding textures")
	rootCmd.AddCommand(exportCmd)

	thumbsCmd.Flags().StringVarP(&thumbsDir, "dir", "d", "thumbs", "output directory")
	thumbsCmd.Flags().UintVar(&thumbsSize, "size", 256, "maximum thumbnail dimension in pixels")
	rootCmd.AddCommand(thumbsCmd)
}
