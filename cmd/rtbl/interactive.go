// interactive.go -- stdin-driven crack loop
//
// License GPLv2
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/jpap/rainbow"
)

// interactive reads one target hash per line from stdin (hex encoded)
// and reports its plaintext, if found. The line "exit" terminates.
func interactive(t *rainbow.Table, opts rainbow.FindOptions, cache *rainbow.ResultCache) {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "exit" {
			return
		}

		target, err := hex.DecodeString(line)
		if err != nil {
			fmt.Printf("invalid hex: %s\n", err)
			continue
		}

		seed, ok := rainbow.FindCached(t, target, opts, cache)
		if !ok {
			fmt.Println("not found")
			continue
		}
		fmt.Println(seed)
	}
}
