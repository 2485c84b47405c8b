package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/canopyml/canopy/model"
	"github.com/spf13/cobra"
)

type summarizeCmdConfig struct {
	*rootCmdConfig
	documentInput string
	indent        int
}

func summarizeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &summarizeCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Collapse a serialized binary decision tree into N-ary form",
		Long:  `Reads a serialized binary decision-tree document and rewrites runs of splits on the same original feature into single N-ary nodes with interval or membership guards`,
		Run: func(cmd *cobra.Command, args []string) {
			doc, err := config.readDocument()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			logger(config.verbose).Logf("summarizing document from %s...", config.documentSource())
			summarized := model.Summarize(doc)
			output, err := renderDocument(summarized, config.indent)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			fmt.Println(output)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.documentInput), "input", "i", "", "path to the serialized tree document (defaults to STDIN)")
	cmd.PersistentFlags().IntVarP(&(config.indent), "indent", "n", 2, "number of spaces to indent the output with, 0 for compact output")
	return cmd
}

func (scc *summarizeCmdConfig) readDocument() (*model.Node, error) {
	var data []byte
	var err error
	if scc.documentInput == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(scc.documentInput)
	}
	if err != nil {
		return nil, fmt.Errorf("reading tree document from %s: %v", scc.documentSource(), err)
	}
	doc := &model.Node{}
	if err = json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parsing tree document from %s: %v", scc.documentSource(), err)
	}
	return doc, nil
}

func (scc *summarizeCmdConfig) documentSource() string {
	if scc.documentInput == "" {
		return "STDIN"
	}
	return scc.documentInput
}

func renderDocument(doc *model.Node, indent int) (string, error) {
	var data []byte
	var err error
	if indent <= 0 {
		data, err = json.Marshal(doc)
	} else {
		data, err = json.MarshalIndent(doc, "", strings.Repeat(" ", indent))
	}
	if err != nil {
		return "", fmt.Errorf("rendering tree document: %v", err)
	}
	return string(data), nil
}
