// Command send-call uploads one recording to a running callaudit instance
// and prints the analysis. It is a manual smoke tool for deployments.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Default request timeout; one analysis can take a minute of external calls.
const defaultTimeout = 5 * time.Minute

type analysisResult struct {
	ID              string         `json:"id"`
	Transcript      string         `json:"transcript"`
	Scores          map[string]int `json:"scores"`
	OverallFeedback string         `json:"overallFeedback"`
	Observation     string         `json:"observation"`
	Total           int            `json:"total"`
	MaxTotal        int            `json:"maxTotal"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "base URL of the service")
	path := flag.String("file", "", "path to the audio recording (mp3/wav)")
	timeout := flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
	showTranscript := flag.Bool("transcript", false, "print the transcript as well")
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: send-call -file recording.mp3 [-url http://host:port]")
		os.Exit(2)
	}

	result, err := upload(*baseURL, *path, *timeout)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	keys := make([]string, 0, len(result.Scores))
	for k := range result.Scores {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("analysis %s\n", result.ID)
	for _, k := range keys {
		fmt.Printf("  %-20s %d\n", k, result.Scores[k])
	}
	fmt.Printf("  %-20s %d/%d\n", "total", result.Total, result.MaxTotal)
	fmt.Println("feedback:   ", result.OverallFeedback)
	fmt.Println("observation:", result.Observation)
	if *showTranscript {
		fmt.Println("transcript:")
		fmt.Println(result.Transcript)
	}
}

// upload posts the recording as multipart/form-data and decodes the result.
func upload(baseURL, path string, timeout time.Duration) (*analysisResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("audio", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	if _, err := io.Copy(fw, f); err != nil {
		return nil, fmt.Errorf("read recording: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finish form: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/analyze", &body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("server returned %d", resp.StatusCode)
	}

	var result analysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}
