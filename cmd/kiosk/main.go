package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/opsuite/opsuite-backend-go/internal/client"
	"github.com/opsuite/opsuite-backend-go/internal/kiosk"
)

// terminalConfirmer asks the operator on stdin.
type terminalConfirmer struct {
	in *bufio.Reader
}

func (c *terminalConfirmer) Confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := c.in.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	Landing     string `json:"landing"`
}

func main() {
	_ = godotenv.Load()

	apiURL := flag.String("api", envOr("KIOSK_API_URL", "http://localhost:8080"), "API base URL")
	email := flag.String("email", os.Getenv("KIOSK_EMAIL"), "kiosk account email")
	password := flag.String("password", os.Getenv("KIOSK_PASSWORD"), "kiosk account password")
	lat := flag.Float64("lat", 0, "kiosk latitude")
	lng := flag.Float64("lng", 0, "kiosk longitude")
	accuracy := flag.Float64("accuracy", 5, "reported fix accuracy in meters")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "email and password are required (flags or KIOSK_EMAIL/KIOSK_PASSWORD)")
		os.Exit(1)
	}

	ctx := context.Background()
	api := client.New(*apiURL)

	var login loginResponse
	if err := api.Post(ctx, "/api/v1/auth/login", loginRequest{Email: *email, Password: *password}, &login); err != nil {
		fmt.Fprintln(os.Stderr, "login failed:", err)
		os.Exit(1)
	}
	api.SetToken(login.AccessToken)
	fmt.Println("Logged in, landing:", login.Landing)

	stdin := bufio.NewReader(os.Stdin)
	flow := kiosk.NewFlow(
		api,
		kiosk.StaticLocation{Latitude: *lat, Longitude: *lng, AccuracyMeters: *accuracy},
		kiosk.StubCamera{PhotoName: "proof.jpg", PhotoData: []byte{}},
		&terminalConfirmer{in: stdin},
	)
	flow.OnTransition = func(s kiosk.State) {
		fmt.Println("  >", s)
	}

	for {
		fmt.Print("Press Enter to check in/out (Ctrl+C to quit): ")
		if _, err := stdin.ReadString('\n'); err != nil {
			return
		}

		result, err := flow.Run(ctx)
		if err != nil {
			fmt.Println("attempt refused:", err)
			continue
		}

		fmt.Printf("[%s] %s\n", result.State, result.Message)
		if result.Tracker != nil {
			fmt.Printf("  tracker %s, status %s\n", result.Tracker.ID, result.Tracker.Status)
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
