package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vprudente/insta-fashion/internal/domain/valueobjects"
)

type dataURIOptions struct {
	toPNG  bool
	outDir string
}

func newDataURICmd() *cobra.Command {
	opts := &dataURIOptions{}

	cmd := &cobra.Command{
		Use:   "datauri IMAGE...",
		Short: "Print images as data URIs for request bodies",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				uri, err := encodeDataURI(path, opts.toPNG)
				if err != nil {
					return err
				}

				if opts.outDir == "" {
					fmt.Fprintln(cmd.OutOrStdout(), uri)
					continue
				}

				// 拡張子を除いたファイル名で .txt として保存する
				name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".txt"
				if err := os.WriteFile(filepath.Join(opts.outDir, name), []byte(uri), 0o644); err != nil {
					return fmt.Errorf("failed to save %s: %w", name, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.toPNG, "png", false, "Re-encode the image as PNG first")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", "", "Write one .txt file per image instead of printing")

	return cmd
}

func encodeDataURI(path string, toPNG bool) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	if toPNG {
		img, _, err := image.Decode(bytes.NewReader(raw))
		if err != nil {
			return "", fmt.Errorf("failed to decode %s: %w", path, err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return "", fmt.Errorf("failed to encode %s as png: %w", path, err)
		}
		raw = buf.Bytes()
	}

	data, err := valueobjects.NewImageData(raw, "")
	if err != nil {
		return "", fmt.Errorf("invalid image %s: %w", path, err)
	}
	return data.ToDataURI(), nil
}
