// qrunweb serves the show's last autosaved snapshot as JSON, for a
// browser-side status page or a quick curl check of what's currently
// configured without connecting a control surface.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"tunnelcore/lib/show"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	snapshotPath := flag.String("snapshot", "show.snapshot", "path to the show's autosaved snapshot")
	flag.Parse()

	http.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		data, err := os.ReadFile(*snapshotPath)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		var st show.ShowState
		if err := msgpack.Unmarshal(data, &st); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(st)
	})

	fmt.Printf("Listening on %s, serving %s\n", *addr, *snapshotPath)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
