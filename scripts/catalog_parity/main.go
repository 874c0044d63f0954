// Command catalog_parity checks that the adopt-api catalog view stays in
// lockstep with the upstream HelpFurr API it fronts. It fetches the
// approved listings from both sides and reports dogs missing from or
// extra in the derived view. Used as a smoke check after deploys and
// when the upstream contract shifts.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"
)

type listing struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type envelope struct {
	Data []listing              `json:"data"`
	Meta map[string]interface{} `json:"meta"`
}

type report struct {
	UpstreamCount int
	ViewCount     int
	Missing       []listing
	Extra         []listing
	DurationUp    time.Duration
	DurationView  time.Duration
}

func main() {
	var (
		apiBase      string
		upstreamBase string
		timeout      time.Duration
	)

	flag.StringVar(&apiBase, "api-base", "http://localhost:8080", "adopt-api base URL")
	flag.StringVar(&upstreamBase, "upstream-base", "http://localhost:4000", "upstream HelpFurr API base URL")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	client := &http.Client{Timeout: timeout}

	upstream, upDur, err := fetchUpstream(client, upstreamBase)
	if err != nil {
		log.Fatalf("failed to fetch upstream catalog: %v", err)
	}
	view, viewDur, err := fetchView(client, apiBase)
	if err != nil {
		log.Fatalf("failed to fetch catalog view: %v", err)
	}

	rep := compare(upstream, view)
	rep.DurationUp = upDur
	rep.DurationView = viewDur
	printReport(rep)

	if len(rep.Missing) > 0 || len(rep.Extra) > 0 {
		os.Exit(1)
	}
}

func fetchUpstream(client *http.Client, base string) ([]listing, time.Duration, error) {
	body, dur, err := get(client, base, "/dogs/approvedPets")
	if err != nil {
		return nil, dur, err
	}
	var listings []listing
	if err := json.Unmarshal(body, &listings); err != nil {
		return nil, dur, fmt.Errorf("decode upstream catalog: %w", err)
	}
	return listings, dur, nil
}

func fetchView(client *http.Client, base string) ([]listing, time.Duration, error) {
	body, dur, err := get(client, base, "/dogs")
	if err != nil {
		return nil, dur, err
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, dur, fmt.Errorf("decode catalog view: %w", err)
	}
	return env.Data, dur, nil
}

func get(client *http.Client, base, path string) ([]byte, time.Duration, error) {
	url := strings.TrimRight(base, "/") + path
	start := time.Now()
	resp, err := client.Get(url)
	if err != nil {
		return nil, time.Since(start), err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, time.Since(start), fmt.Errorf("%s returned status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	return body, time.Since(start), err
}

func compare(upstream, view []listing) report {
	rep := report{UpstreamCount: len(upstream), ViewCount: len(view)}

	inView := make(map[string]bool, len(view))
	for _, l := range view {
		inView[l.ID] = true
	}
	inUpstream := make(map[string]bool, len(upstream))
	for _, l := range upstream {
		inUpstream[l.ID] = true
		if !inView[l.ID] {
			rep.Missing = append(rep.Missing, l)
		}
	}
	for _, l := range view {
		if !inUpstream[l.ID] {
			rep.Extra = append(rep.Extra, l)
		}
	}

	sort.Slice(rep.Missing, func(i, j int) bool { return rep.Missing[i].ID < rep.Missing[j].ID })
	sort.Slice(rep.Extra, func(i, j int) bool { return rep.Extra[i].ID < rep.Extra[j].ID })
	return rep
}

func printReport(rep report) {
	fmt.Println("Catalog Parity Report")
	fmt.Println("=====================")
	fmt.Printf("Upstream listings: %d (%s)\n", rep.UpstreamCount, rep.DurationUp)
	fmt.Printf("View listings:     %d (%s)\n", rep.ViewCount, rep.DurationView)
	for _, l := range rep.Missing {
		fmt.Printf("  MISSING %s (%s)\n", l.ID, l.Name)
	}
	for _, l := range rep.Extra {
		fmt.Printf("  EXTRA   %s (%s)\n", l.ID, l.Name)
	}
	if len(rep.Missing) == 0 && len(rep.Extra) == 0 {
		fmt.Println("  catalog view matches upstream")
	}
}
