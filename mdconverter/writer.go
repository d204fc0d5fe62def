package mdconverter

import (
	"fmt"

	"github.com/rgonek/delta-md-converter/delta"
)

// BuildDocument converts blocks into a Delta document. Each block emits one insert
// per inline run and ends with a newline insert carrying the block attributes.
func BuildDocument(blocks []Block) delta.Document {
	ops := make([]delta.Op, 0, len(blocks)*2)

	for _, block := range blocks {
		if block.Kind == BlockCodeBlock {
			// Code is literal: one unformatted insert, internal newlines kept.
			if text := block.Text(); text != "" {
				ops = append(ops, delta.Insert(text, nil))
			}
		} else {
			blockStart := len(ops)
			for _, run := range block.Runs {
				if run.Text == "" {
					continue
				}
				ops = appendRun(ops, blockStart, run)
			}
		}

		ops = append(ops, delta.Insert("\n", blockAttributes(block)))
	}

	return delta.Document{Ops: ops}
}

// appendRun adds a run, coalescing it into the previous insert of the same block
// when the formatting matches.
func appendRun(ops []delta.Op, blockStart int, run Run) []delta.Op {
	attrs := runAttributes(run)
	if n := len(ops); n > blockStart && ops[n-1].IsText() && ops[n-1].Attrs.Equal(attrs) {
		ops[n-1].Text += run.Text
		return ops
	}
	return append(ops, delta.Insert(run.Text, attrs))
}

// WriteFromBlocks converts blocks into canonical Delta JSON.
func WriteFromBlocks(blocks []Block) (string, error) {
	data, err := delta.Encode(BuildDocument(blocks))
	if err != nil {
		return "", fmt.Errorf("failed to encode Delta JSON: %w", err)
	}
	return string(data), nil
}
