package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

// Config
const (
	API_URL = "http://localhost:8080/api/v1/ingest/stats"
	SEASON  = 2025
	MATCHES = 40
)

var teams = []string{
	"team-arsenal", "team-chelsea", "team-liverpool", "team-spurs",
	"team-city", "team-united", "team-newcastle", "team-villa",
}

// Record matches models.MatchStatRecord structure
type Record struct {
	MatchID       string    `json:"match_id"`
	Season        int       `json:"season"`
	CompetitionID string    `json:"competition_id"`
	HomeTeamID    string    `json:"home_team_id"`
	AwayTeamID    string    `json:"away_team_id"`
	MatchDate     time.Time `json:"match_date"`
	Status        string    `json:"status"`

	HomeCorners *float64 `json:"home_corners,omitempty"`
	AwayCorners *float64 `json:"away_corners,omitempty"`
	HomeCards   *float64 `json:"home_cards,omitempty"`
	AwayCards   *float64 `json:"away_cards,omitempty"`
	HomeGoals   *float64 `json:"home_goals,omitempty"`
	AwayGoals   *float64 `json:"away_goals,omitempty"`
}

func f(v float64) *float64 { return &v }

func main() {
	rng := rand.New(rand.NewSource(42))

	// The handler splits the body by newline, one JSON record per line.
	var lines []string
	date := time.Now().UTC().AddDate(0, -6, 0)
	for i := 0; i < MATCHES; i++ {
		home := teams[rng.Intn(len(teams))]
		away := teams[rng.Intn(len(teams))]
		if home == away {
			continue
		}

		rec := Record{
			MatchID:       fmt.Sprintf("seed-match-%03d", i),
			Season:        SEASON,
			CompetitionID: "comp-epl",
			HomeTeamID:    home,
			AwayTeamID:    away,
			MatchDate:     date.AddDate(0, 0, i*3),
			Status:        "FT",
			HomeCorners:   f(float64(3 + rng.Intn(8))),
			AwayCorners:   f(float64(2 + rng.Intn(7))),
			HomeCards:     f(float64(rng.Intn(5))),
			AwayCards:     f(float64(rng.Intn(6))),
			HomeGoals:     f(float64(rng.Intn(4))),
			AwayGoals:     f(float64(rng.Intn(3))),
		}

		payload, err := json.Marshal(rec)
		if err != nil {
			log.Fatalf("Failed to marshal JSON: %v", err)
		}
		lines = append(lines, string(payload))
	}

	body := strings.Join(lines, "\n")
	req, err := http.NewRequest("POST", API_URL, bytes.NewBufferString(body))
	if err != nil {
		log.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status: %s\n", resp.Status)
	fmt.Printf("Response: %s\n", string(respBody))

	if resp.StatusCode == 202 {
		fmt.Println("Seed accepted")
	} else {
		fmt.Println("Seed rejected")
	}
}
