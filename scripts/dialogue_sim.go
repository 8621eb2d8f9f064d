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

// Walks one full dialogue loop against a running server:
// create note -> generate -> respond -> continue -> extract insights.
// Usage: go run scripts/dialogue_sim.go <jwt-token>

func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
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
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{} // No timeout; LLM calls can be slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func dataField(body []byte) map[string]interface{} {
	var parsed map[string]interface{}
	json.Unmarshal(body, &parsed)
	data, _ := parsed["data"].(map[string]interface{})
	return data
}

func main() {
	if len(os.Args) < 2 {
		color.Red("Usage: go run scripts/dialogue_sim.go <jwt-token>")
		os.Exit(1)
	}
	token := os.Args[1]

	color.Cyan("🚀 Starting Socratic Dialogue API Walkthrough\n")

	// 1. Create a note to talk about
	color.Yellow("\n[1] Create Note")
	noteReq := map[string]interface{}{
		"title":   "Remote Work Thoughts",
		"content": "I believe remote work is always more productive because there are fewer interruptions.",
	}
	resp, body, err := sendRequest("POST", "/note/v1", token, noteReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	noteId, _ := dataField(body)["id"].(string)
	if noteId == "" {
		color.Red("No note id in response")
		os.Exit(1)
	}
	color.Green("Note: %s", noteId)

	// 2. Generate questions
	color.Yellow("\n[2] Generate Questions")
	genReq := map[string]interface{}{
		"question_types": []string{"ASSUMPTION", "PERSPECTIVE"},
		"intensity":      "MODERATE",
		"max_questions":  2,
	}
	resp, body, err = sendRequest("POST", "/dialogue/v1/note/"+noteId+"/generate", token, genReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	session := dataField(body)
	prettyPrint(session)

	sessionId, _ := session["id"].(string)
	exchanges, _ := session["exchanges"].([]interface{})
	if sessionId == "" || len(exchanges) == 0 {
		color.Red("No session or questions returned")
		os.Exit(1)
	}
	first, _ := exchanges[0].(map[string]interface{})
	question, _ := first["question"].(map[string]interface{})
	questionId, _ := question["id"].(string)

	// 3. Record a response to the first question
	color.Yellow("\n[3] Record Response")
	respondReq := map[string]interface{}{
		"session_id":  sessionId,
		"question_id": questionId,
		"response":    "I assume fewer interruptions, but honestly my home has plenty of its own.",
	}
	resp, body, err = sendRequest("POST", "/dialogue/v1/note/"+noteId+"/respond", token, respondReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(dataField(body))

	// 4. Continue the dialogue
	color.Yellow("\n[4] Continue Dialogue")
	contReq := map[string]interface{}{
		"session_id":    sessionId,
		"max_questions": 1,
	}
	resp, body, err = sendRequest("POST", "/dialogue/v1/note/"+noteId+"/continue", token, contReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(dataField(body))

	// 5. Extract insights
	color.Yellow("\n[5] Extract Insights")
	extractReq := map[string]interface{}{
		"session_id": sessionId,
	}
	resp, body, err = sendRequest("POST", "/dialogue/v1/note/"+noteId+"/extract-insights", token, extractReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(dataField(body))

	// 6. Read the history back
	color.Yellow("\n[6] Dialogue History")
	resp, body, err = sendRequest("GET", "/dialogue/v1/note/"+noteId+"/history", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(dataField(body))

	color.Cyan("\n✅ Walkthrough complete")
}
