/*
Copyright (C) 2026 Polaris Observatory Collaboration

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package command

import (
	"errors"
	"fmt"

	"github.com/polarisobs/meridian/internal/block"
)

// ErrUnknownVariant reports a block type the compiler has no command mapping
// for. The compiler is exhaustive over the known variant set and must be
// extended when a new block type is introduced, never skipped.
var ErrUnknownVariant = errors.New("unknown block variant")

// Compile maps a finalized, sorted, non-overlapping sequence to a command
// tree: the fixed preamble, then one composite per block in time order.
func Compile(blocks []block.Block) (Command, error) {
	commands := []Command{Preamble()}
	for _, b := range blocks {
		switch sb := b.(type) {
		case block.Scan:
			commands = append(commands, compileScan(sb))
		default:
			return nil, fmt.Errorf("%w: no command mapping for %q block", ErrUnknownVariant, b.Kind())
		}
	}
	return Composite{Commands: commands}, nil
}

func compileScan(sb block.Scan) Composite {
	return Composite{Commands: []Command{
		Raw("# " + sb.Target),
		MoveTo{Az: sb.Az, Alt: sb.Alt},
		BiasDets{},
		Wait{T0: sb.T0()},
		BiasStep{},
		Scan{Field: sb.Target, Stop: sb.T1(), Width: sb.Throw},
		BiasStep{},
		Raw(""),
	}}
}
