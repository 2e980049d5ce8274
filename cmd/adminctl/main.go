// adminctl is the terminal-based admin panel client. It signs in
// against a running server, keeps the session on disk between runs,
// and gates each command through the same route-guard rules the web
// panel uses.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mansaluxe/realty-backend/internal/client"
	"github.com/mansaluxe/realty-backend/internal/models"
	"github.com/mansaluxe/realty-backend/internal/session"
)

const usage = `Usage: adminctl [-server URL] <command>

Commands:
  login -email <email> -password <password>
  logout
  whoami
  properties
  testimonials
  stats
`

func main() {
	serverURL := flag.String("server", envOr("ADMINCTL_SERVER", "http://localhost:8080"), "server base URL")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	api := client.New(*serverURL, stateDir())
	manager := session.NewManager(api, api)
	defer manager.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	manager.Start(ctx)

	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	var err error
	switch cmd {
	case "login":
		err = runLogin(ctx, manager, args)
	case "logout":
		manager.Logout(ctx)
		fmt.Println("signed out")
	case "whoami":
		err = runWhoami(ctx, manager, api)
	case "properties":
		err = runProperties(ctx, manager, api)
	case "testimonials":
		err = runTestimonials(ctx, manager, api)
	case "stats":
		err = runStats(ctx, manager, api)
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runLogin(ctx context.Context, manager *session.Manager, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "admin email")
	password := fs.String("password", "", "admin password")
	fs.Parse(args)

	if *email == "" || *password == "" {
		return fmt.Errorf("both -email and -password are required")
	}

	if err := manager.Login(ctx, *email, *password); err != nil {
		return err
	}

	state := manager.Snapshot()
	fmt.Printf("signed in as %s (%s)\n", state.Identity.Email, state.AdminUser.Role)
	return nil
}

func runWhoami(ctx context.Context, manager *session.Manager, api *client.Client) error {
	if err := requireAccess(ctx, manager, session.Requirement{}); err != nil {
		return err
	}
	principal, err := api.Principal()
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s>\nrole: %s\npermissions: %v\n",
		principal.Name, principal.Email, principal.Role, principal.Permissions)
	return nil
}

func runProperties(ctx context.Context, manager *session.Manager, api *client.Client) error {
	err := requireAccess(ctx, manager, session.Requirement{Permission: models.PermissionPropertyManagement})
	if err != nil {
		return err
	}
	properties, err := api.Properties(ctx)
	if err != nil {
		return err
	}
	for _, p := range properties {
		fmt.Printf("%s  %-10s  %12.0f  %s\n", p.ID, p.Status, p.Price, p.Title)
	}
	fmt.Printf("%d properties\n", len(properties))
	return nil
}

func runTestimonials(ctx context.Context, manager *session.Manager, api *client.Client) error {
	err := requireAccess(ctx, manager, session.Requirement{Permission: models.PermissionTestimonialManagement})
	if err != nil {
		return err
	}
	testimonials, err := api.Testimonials(ctx)
	if err != nil {
		return err
	}
	for _, t := range testimonials {
		published := " "
		if t.Published {
			published = "*"
		}
		fmt.Printf("%s %s %d/5  %s\n", published, t.ID, t.Rating, t.Name)
	}
	fmt.Printf("%d testimonials\n", len(testimonials))
	return nil
}

func runStats(ctx context.Context, manager *session.Manager, api *client.Client) error {
	if err := requireAccess(ctx, manager, session.Requirement{}); err != nil {
		return err
	}
	stats, err := api.DashboardStats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("properties:       %d (%d sold)\n", stats.TotalProperties, stats.PropertiesSold)
	fmt.Printf("pending:          %d\n", stats.PendingInquiries)
	fmt.Printf("testimonials:     %d\n", stats.TotalTestimonials)
	fmt.Printf("admin users:      %d\n", stats.AdminUsers)
	fmt.Printf("monthly revenue:  %s\n", stats.MonthlyRevenue)
	return nil
}

// requireAccess waits for session resolution, then evaluates the guard
// the same way a route transition would.
func requireAccess(ctx context.Context, manager *session.Manager, req session.Requirement) error {
	state, err := awaitResolved(ctx, manager)
	if err != nil {
		return err
	}

	decision := session.Evaluate(state, req, "adminctl")
	switch decision.Outcome {
	case session.OutcomeAllow:
		return nil
	case session.OutcomeRedirectToLogin:
		return fmt.Errorf("not signed in; run: adminctl login -email <email> -password <password>")
	case session.OutcomeAccessDenied:
		return fmt.Errorf("access denied")
	default:
		return fmt.Errorf("session still resolving")
	}
}

// awaitResolved blocks until the manager leaves the loading state.
func awaitResolved(ctx context.Context, manager *session.Manager) (session.State, error) {
	done := make(chan session.State, 1)
	unsubscribe := manager.Subscribe(func(s session.State) {
		if !s.Loading {
			select {
			case done <- s:
			default:
			}
		}
	})
	defer unsubscribe()

	if state := manager.Snapshot(); !state.Loading {
		return state, nil
	}

	select {
	case state := <-done:
		return state, nil
	case <-ctx.Done():
		return session.State{}, fmt.Errorf("timed out waiting for session: %w", ctx.Err())
	}
}

func stateDir() string {
	if dir := os.Getenv("ADMINCTL_STATE_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".adminctl"
	}
	return filepath.Join(home, ".adminctl")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
