package cliutil

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/FilipeMCruz/playlist-maker/maker/eval"
	"github.com/FilipeMCruz/playlist-maker/maker/snapshot"
	"github.com/FilipeMCruz/playlist-maker/maker/track"
)

// OutputFormat selects how Index results are written.
type OutputFormat string

const (
	FormatCSV  OutputFormat = "csv"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want csv, json or yaml)", s)
	}
}

func PrintJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func PrintYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// PrintPaths writes one path per line. Play mode output.
func PrintPaths(w io.Writer, paths []string) error {
	for _, p := range paths {
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	return nil
}

// WriteTracks writes full records in the given format. Index mode output.
func WriteTracks(w io.Writer, format OutputFormat, tracks []track.Track) error {
	if tracks == nil {
		tracks = []track.Track{}
	}
	switch format {
	case FormatJSON:
		return PrintJSON(w, tracks)
	case FormatYAML:
		return PrintYAML(w, tracks)
	default:
		return snapshot.Write(w, tracks)
	}
}

// PrintProblems writes one "token: reason" line per problem, or "ok".
func PrintProblems(w io.Writer, problems []eval.Problem) error {
	if len(problems) == 0 {
		_, err := fmt.Fprintln(w, "ok")
		return err
	}
	for _, p := range problems {
		if _, err := fmt.Fprintln(w, p.String()); err != nil {
			return err
		}
	}
	return nil
}
