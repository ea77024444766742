// Package main provides a small CLI that tails the live event stream.
// Useful for watching engagement events during development and load tests.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	host := flag.String("host", "localhost:8476", "API server host")
	email := flag.String("email", "test@example.com", "User email")
	password := flag.String("password", "password123", "User password")
	token := flag.String("token", "", "JWT token (skips login when set)")
	flag.Parse()

	jwt := *token
	if jwt == "" {
		var err error
		jwt, err = login(*host, *email, *password)
		if err != nil {
			log.Fatalf("Login failed: %v", err)
		}
		log.Printf("Logged in as %s", *email)
	}

	u := url.URL{Scheme: "ws", Host: *host, Path: "/api/ws/", RawQuery: "token=" + jwt}
	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	if resp != nil && resp.Body != nil {
		defer func() { _ = resp.Body.Close() }()
	}
	defer func() { _ = conn.Close() }()

	log.Printf("Connected to %s, tailing events (Ctrl-C to stop)", u.String())

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				log.Printf("read: %v", err)
				return
			}
			fmt.Printf("%s %s\n", time.Now().Format(time.RFC3339), message)
		}
	}()

	select {
	case <-done:
	case <-interrupt:
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}

func login(host, email, password string) (string, error) {
	loginURL := fmt.Sprintf("http://%s/api/auth/login", host)
	payload := map[string]string{
		"email":    email,
		"password": password,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(loginURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	return result.Token, nil
}
