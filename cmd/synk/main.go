// Synk CLI - the command-line companion for the Synk daemon.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	// Config
	addr string

	// Version
	version = "0.1.0-alpha"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "synk",
		Short: "Synk - your social practice companion",
		Long: `Synk is a guided companion for practicing social skills.

Check in daily, take the intake survey, roleplay conversations
with an AI coach and earn badges that unlock new connections.

Your data stays on YOUR device. Always.`,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&addr, "addr", "http://localhost:8787", "daemon address")

	// Commands
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(checkinCmd())
	rootCmd.AddCommand(demoCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loginCmd signs in to the daemon
func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in to the Synk daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)
			fmt.Print("Username: ")
			username, _ := reader.ReadString('\n')
			username = strings.TrimSpace(username)

			fmt.Print("Password: ")
			password, err := term.ReadPassword(int(os.Stdin.Fd()))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			fmt.Println()

			var session sessionView
			err = postJSON("/api/v1/login", map[string]string{
				"username": username,
				"password": string(password),
			}, &session)
			if err != nil {
				return err
			}

			fmt.Println("✅ Signed in.")
			printSession(session)
			return nil
		},
	}
}

// statusCmd shows the current session
func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the Synk session status",
		RunE: func(cmd *cobra.Command, args []string) error {
			var session sessionView
			if err := getJSON("/api/v1/session", &session); err != nil {
				return err
			}

			fmt.Println("📊 Synk Status")
			fmt.Println()
			printSession(session)
			return nil
		},
	}
}

// checkinCmd runs the daily mood check-in interactively
func checkinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkin",
		Short: "Record today's mood check-in",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				Question struct {
					Question string   `json:"question"`
					Answers  []string `json:"answers"`
				} `json:"question"`
				Done bool `json:"done"`
			}
			if err := getJSON("/api/v1/checkin/question", &resp); err != nil {
				return err
			}

			if resp.Done {
				fmt.Println("✅ Already checked in today. See you tomorrow!")
				return nil
			}

			fmt.Println(resp.Question.Question)
			for i, a := range resp.Question.Answers {
				fmt.Printf("  %d. %s\n", i+1, a)
			}

			reader := bufio.NewReader(os.Stdin)
			fmt.Print("Pick an answer: ")
			choice, _ := reader.ReadString('\n')
			n, err := strconv.Atoi(strings.TrimSpace(choice))
			if err != nil || n < 1 || n > len(resp.Question.Answers) {
				return fmt.Errorf("pick a number between 1 and %d", len(resp.Question.Answers))
			}

			fmt.Print("Anything to add? (optional) ")
			note, _ := reader.ReadString('\n')

			var checkin struct {
				Label string `json:"label"`
			}
			err = postJSON("/api/v1/checkin", map[string]string{
				"question": resp.Question.Question,
				"label":    resp.Question.Answers[n-1],
				"note":     strings.TrimSpace(note),
			}, &checkin)
			if err != nil {
				return err
			}

			fmt.Printf("✅ Check-in recorded: %s\n", checkin.Label)
			return nil
		},
	}
}

// demoCmd loads the demo dataset
func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Load the demo session",
		RunE: func(cmd *cobra.Command, args []string) error {
			var session sessionView
			if err := postJSON("/api/v1/demo", nil, &session); err != nil {
				return err
			}

			fmt.Println("✅ Demo session loaded.")
			printSession(session)
			return nil
		},
	}
}

// versionCmd shows version
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show Synk version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Synk %s\n", version)
			fmt.Println("Your social practice companion")
		},
	}
}

// sessionView mirrors the daemon's session payload
type sessionView struct {
	Page        string `json:"page"`
	Tab         string `json:"tab"`
	Nickname    string `json:"nickname"`
	CheckinDone bool   `json:"checkin_done"`
	Gates       struct {
		SuccessfulPractices int  `json:"successful_practices"`
		RequiredPractices   int  `json:"required_practices"`
		HasDiagnosis        bool `json:"has_diagnosis"`
		ConnectUnlocked     bool `json:"connect_unlocked"`
		WorkshopRecommended bool `json:"workshop_recommended"`
	} `json:"gates"`
}

func printSession(s sessionView) {
	if s.Nickname != "" {
		fmt.Printf("   Nickname: %s\n", s.Nickname)
	}
	fmt.Printf("   Page: %s\n", s.Page)
	fmt.Printf("   Tab: %s\n", s.Tab)

	checkin := "pending"
	if s.CheckinDone {
		checkin = "done"
	}
	fmt.Printf("   Today's check-in: %s\n", checkin)

	diagnosis := "not yet"
	if s.Gates.HasDiagnosis {
		diagnosis = "complete"
	}
	fmt.Printf("   Diagnosis: %s\n", diagnosis)
	fmt.Printf("   Practice badges: %d/%d\n", s.Gates.SuccessfulPractices, s.Gates.RequiredPractices)

	if s.Gates.ConnectUnlocked {
		fmt.Println("   🔓 Conectar: unlocked")
	} else {
		fmt.Println("   🔒 Conectar: locked")
	}
	if s.Gates.WorkshopRecommended {
		fmt.Println("   💡 Taller: recommended")
	}
}

// --- HTTP helpers ---

func getJSON(path string, dest interface{}) error {
	resp, err := http.Get(addr + path)
	if err != nil {
		return fmt.Errorf("is the daemon running? %w", err)
	}
	defer resp.Body.Close()
	return decodeResponse(resp, dest)
}

func postJSON(path string, body, dest interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	resp, err := http.Post(addr+path, "application/json", &buf)
	if err != nil {
		return fmt.Errorf("is the daemon running? %w", err)
	}
	defer resp.Body.Close()
	return decodeResponse(resp, dest)
}

func decodeResponse(resp *http.Response, dest interface{}) error {
	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("daemon returned %s", resp.Status)
	}

	if dest == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}
