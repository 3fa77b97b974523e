// Command occlusion-repl loads a visibility dataset and drives an
// interactive CHECK(...)/STATS()/EXIT loop against it, for local
// verification without standing up the HTTP server.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/occlusion-dev/occlusion/internal/cli"
	"github.com/occlusion-dev/occlusion/internal/loader"
	"github.com/occlusion-dev/occlusion/internal/query"
	"github.com/occlusion-dev/occlusion/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: occlusion-repl <data-source> [backend]")
		os.Exit(64)
	}
	source := os.Args[1]
	backend := store.KindHashMap
	if len(os.Args) >= 3 {
		backend = store.Kind(os.Args[2])
	}

	result, err := loader.Load(source, loader.Options{Backend: backend})
	if err != nil {
		fmt.Fprintln(os.Stderr, "load error:", err)
		os.Exit(1)
	}

	eng := query.New(result.Store, result.Stats, 0)

	fmt.Print(`occlusion REPL ready.
Commands:
  CHECK(uuid,mask)
  STATS()
  EXIT
`)

	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			break
		}

		cmd, args, ok, errMsg := cli.ParseCall(sc.Text())
		if !ok {
			if errMsg != "" {
				fmt.Println("parse error:", errMsg)
			}
			continue
		}

		switch cmd {
		case "EXIT", "QUIT":
			return

		case "CHECK":
			if len(args) != 2 {
				fmt.Println("usage: CHECK(uuid,mask)")
				continue
			}
			mask, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Println("mask must be an integer:", err)
				continue
			}
			decision, err := eng.Check(args[0], mask)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			fmt.Println(decision)

		case "STATS":
			if len(args) != 0 {
				fmt.Println("usage: STATS()")
				continue
			}
			stats := eng.Stats()
			fmt.Printf("total_entries=%d load_source=%s loaded_at=%s\n",
				stats.TotalEntries, stats.LoadSource, stats.LoadedAt.Format("2006-01-02T15:04:05Z07:00"))

		default:
			fmt.Println("unknown command:", cmd)
		}
	}
}
