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
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
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

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func chat(token, sessionID, query string) string {
	color.Yellow("\n[CHAT] %q", query)
	req := map[string]interface{}{
		"query":      query,
		"session_id": sessionID,
	}
	resp, body, err := sendRequest("POST", "/chat/v1/query", token, req)
	if err != nil {
		color.Red("Failed: %v", err)
		return sessionID
	}
	color.Green("Status: %s", resp.Status)
	var chatResp map[string]interface{}
	json.Unmarshal(body, &chatResp)
	if data, ok := chatResp["data"].(map[string]interface{}); ok {
		fmt.Printf("Intent: %v\n", data["intent"])
		fmt.Printf("Reply:  %v\n", data["reply"])
		fmt.Printf("Memory saved: %v\n", data["memory_saved"])
		if id, ok := data["session_id"].(string); ok {
			return id
		}
	} else {
		prettyPrint(chatResp)
	}
	return sessionID
}

func main() {
	color.Cyan("🚀 Starting Chat Pipeline Smoke Test\n")

	// 1. Login (register first if SMOKE_REGISTER=true)
	email := os.Getenv("SMOKE_EMAIL")
	password := os.Getenv("SMOKE_PASSWORD")
	if email == "" || password == "" {
		color.Red("SMOKE_EMAIL and SMOKE_PASSWORD must be set")
		os.Exit(1)
	}

	if os.Getenv("SMOKE_REGISTER") == "true" {
		color.Yellow("\n[AUTH] 0. Register")
		resp, body, err := sendRequest("POST", "/auth/v1/register", "", map[string]interface{}{
			"email":         email,
			"password":      password,
			"full_name":     "Smoke Tester",
			"business_name": "Smoke Traders",
		})
		if err != nil {
			color.Red("Failed: %v", err)
			os.Exit(1)
		}
		color.Green("Status: %s", resp.Status)
		var regResp map[string]interface{}
		json.Unmarshal(body, &regResp)
		prettyPrint(regResp)
	}

	color.Yellow("\n[AUTH] 1. Login")
	resp, body, err := sendRequest("POST", "/auth/v1/login", "", map[string]interface{}{
		"email":    email,
		"password": password,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var loginResp map[string]interface{}
	json.Unmarshal(body, &loginResp)
	var token string
	if data, ok := loginResp["data"].(map[string]interface{}); ok {
		if t, ok := data["token"].(string); ok {
			token = t
		}
	}
	if token == "" {
		color.Red("Login did not return a token")
		os.Exit(1)
	}

	// 2. Chat flow: invoice create, view, gst verify, preference, summary
	sessionID := chat(token, "", "Create invoice for Acme Corp worth ₹5000")
	sessionID = chat(token, sessionID, "show my invoices")
	sessionID = chat(token, sessionID, "check gst 29ABCDE1234F1Z5")
	sessionID = chat(token, sessionID, "switch language to hindi")
	sessionID = chat(token, sessionID, "how is my business doing this month")

	// 3. Memory summary after the conversation
	color.Yellow("\n[MEMORY] 3. Summary")
	resp, body, err = sendRequest("GET", "/memory/v1/summary", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var memResp map[string]interface{}
		json.Unmarshal(body, &memResp)
		prettyPrint(memResp)
	}

	// 4. Cleanup: clear the smoke session so reruns start fresh
	color.Yellow("\n[CHAT] 4. Cleanup: Clear Session Context")
	resp, body, err = sendRequest("POST", "/chat/v1/clear-context", token, map[string]interface{}{
		"session_id": sessionID,
	})
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var clearResp map[string]interface{}
		json.Unmarshal(body, &clearResp)
		prettyPrint(clearResp)
	}

	color.Cyan("\n✅ Smoke Sequence Complete")
}
