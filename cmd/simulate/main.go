package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

const (
	baseURL    = "http://localhost:3000/api/sms/v1"
	fromNumber = "+15550001111"
)

// Simplified DTOs for the script
type InboundRequest struct {
	MessageId string `json:"message_id"`
	From      string `json:"from"`
	Body      string `json:"body"`
}

type InboundResponse struct {
	Data struct {
		Segments  []string `json:"segments"`
		Duplicate bool     `json:"duplicate"`
	} `json:"data"`
}

func main() {
	color.Cyan("=== SMS Assistant Simulation Client ===")
	fmt.Printf("Sending as: %s\n", fromNumber)
	fmt.Println("Type a message and press Enter. Ctrl+D to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nYOU> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		start := time.Now()
		segments, duplicate, err := sendInbound(text)
		elapsed := time.Since(start)

		if err != nil {
			color.Red("Error: %v", err)
			continue
		}
		if duplicate {
			color.Yellow("(duplicate, carrier redelivery ignored)")
			continue
		}
		for i, seg := range segments {
			color.Green("SMS %d/%d (%v): %s", i+1, len(segments), elapsed, seg)
		}
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("stdin: %v", err)
	}
}

func sendInbound(text string) ([]string, bool, error) {
	payload := InboundRequest{
		MessageId: uuid.NewString(),
		From:      fromNumber,
		Body:      text,
	}
	jsonBytes, _ := json.Marshal(payload)

	req, _ := http.NewRequest("POST", baseURL+"/inbound", bytes.NewBuffer(jsonBytes))
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return nil, false, fmt.Errorf("API Error %d: %s", resp.StatusCode, string(body))
	}

	var res InboundResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, false, err
	}
	return res.Data.Segments, res.Data.Duplicate, nil
}
