// Command smoke exercises the API end to end against a running server:
// register, obtain a token, post a chat message, and read it back.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

type result struct {
	Step   string
	Status int
	Body   string
}

func main() {
	baseURL := flag.String("base-url", "http://127.0.0.1:8080", "server base URL")
	username := flag.String("username", "alice", "username to register and chat as")
	password := flag.String("password", "secretPassword", "password for the test user")
	flag.Parse()

	client := &http.Client{Timeout: 60 * time.Second}
	var results []result

	status, body := get(client, *baseURL+"/chats")
	results = append(results, result{"GET /chats", status, body})

	status, body = postJSON(client, *baseURL+"/users/register", map[string]string{
		"username": *username,
		"password": *password,
		"email":    *username + "@example.com",
	}, "")
	results = append(results, result{"POST /users/register", status, body})

	form := url.Values{}
	form.Set("username", *username)
	form.Set("password", *password)
	status, body = postForm(client, *baseURL+"/api/token", form)
	results = append(results, result{"POST /api/token", status, body})

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	_ = json.Unmarshal([]byte(body), &tokenResp)
	if tokenResp.AccessToken == "" {
		fail(results, "no access token issued")
	}

	status, body = postJSON(client, *baseURL+"/chats", map[string]string{
		"sender":  *username,
		"content": "How do I plant beans in Mbale?",
	}, tokenResp.AccessToken)
	results = append(results, result{"POST /chats", status, body})
	if status != http.StatusCreated {
		fail(results, "chat post did not return 201")
	}

	var message struct {
		MessageID string `json:"messageId"`
		Content   string `json:"content"`
		ThreadID  string `json:"thread_id"`
	}
	_ = json.Unmarshal([]byte(body), &message)
	if message.MessageID == "" || message.Content == "" {
		fail(results, "chat post returned no message id or empty content")
	}
	if strings.Contains(message.Content, "†") {
		fail(results, "citation markers were not stripped")
	}

	status, body = get(client, *baseURL+"/chats/"+message.MessageID)
	results = append(results, result{"GET /chats/" + message.MessageID, status, body})
	if status != http.StatusOK {
		fail(results, "posted message not found in chat log")
	}

	printResults(results)
}

func get(client *http.Client, url string) (int, string) {
	resp, err := client.Get(url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "GET %s: %v\n", url, err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(data)
}

func postJSON(client *http.Client, url string, payload map[string]string, token string) (int, string) {
	data, _ := json.Marshal(payload)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "POST %s: %v\n", url, err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "POST %s: %v\n", url, err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func postForm(client *http.Client, target string, form url.Values) (int, string) {
	resp, err := client.PostForm(target, form)
	if err != nil {
		fmt.Fprintf(os.Stderr, "POST %s: %v\n", target, err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func printResults(results []result) {
	for _, r := range results {
		fmt.Printf("%-40s %d\n%s\n\n", r.Step, r.Status, r.Body)
	}
}

func fail(results []result, reason string) {
	printResults(results)
	fmt.Fprintln(os.Stderr, "smoke test failed:", reason)
	os.Exit(1)
}
