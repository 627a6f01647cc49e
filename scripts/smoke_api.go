//go:build ignore

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	color.Cyan("🚀 Starting DataWeaver API Smoke Test\n")

	// 1. Search
	color.Yellow("\n[SEARCH] 1. Search 'laptop'")
	resp, body, err := sendRequest("POST", "/search/v1", map[string]interface{}{
		"query": "laptop",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	var searchEnvelope struct {
		Data struct {
			SessionId string `json:"session_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &searchEnvelope); err != nil || searchEnvelope.Data.SessionId == "" {
		color.Red("Could not extract session id")
		os.Exit(1)
	}
	sessionId := searchEnvelope.Data.SessionId

	// 2. Session state
	color.Yellow("\n[SEARCH] 2. Get Session State")
	resp, body, err = sendRequest("GET", "/search/v1/session/"+sessionId, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 3. Data chat (needs Ollama running locally)
	color.Yellow("\n[CHAT] 3. Ask the Local Model About the Data")
	resp, body, err = sendRequest("POST", "/chat/v1/data", map[string]interface{}{
		"session_id": sessionId,
		"prompt":     "Which product is the best value?",
	})
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		prettyPrint(body)
	}

	// 4. Cloud assistant
	color.Yellow("\n[CHAT] 4. Ask the Cloud Assistant")
	resp, body, err = sendRequest("POST", "/chat/v1/assistant", map[string]interface{}{
		"session_id": sessionId,
		"prompt":     "Summarize the price range for me.",
	})
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		prettyPrint(body)
	}

	// 5. Export
	color.Yellow("\n[EXPORT] 5. Export as XLSX")
	resp, body, err = sendRequest("POST", "/export/v1", map[string]interface{}{
		"session_id": sessionId,
		"format":     "xlsx",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 6. Unsupported export format
	color.Yellow("\n[EXPORT] 6. Unsupported Format (expect 400)")
	resp, body, err = sendRequest("POST", "/export/v1", map[string]interface{}{
		"session_id": sessionId,
		"format":     "parquet",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	color.Cyan("\n✅ Smoke test finished")
}
