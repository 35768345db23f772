package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/adamscao/certauth/internal/auth"
	"github.com/adamscao/certauth/internal/cert"
	"github.com/adamscao/certauth/internal/config"
	"github.com/adamscao/certauth/internal/db"
	"github.com/adamscao/certauth/internal/db/repository"
	"github.com/adamscao/certauth/internal/logging"
	"github.com/adamscao/certauth/internal/models"
	"github.com/adamscao/certauth/pkg/sshutil"
)

var (
	configPath string
	cfg        *config.Config
	database   *db.DB
)

var rootCmd = &cobra.Command{
	Use:   "certinfo",
	Short: "OpenSSH certificate inspection tool",
	Long:  "Inspect and validate OpenSSH certificates and review recorded authentication decisions",
}

var showCmd = &cobra.Command{
	Use:   "show <cert-file>",
	Short: "Decode a certificate and print its fields",
	Args:  cobra.ExactArgs(1),
	RunE:  showCertificate,
}

var checkCmd = &cobra.Command{
	Use:   "check <cert-file>",
	Short: "Validate a certificate for a principal",
	Args:  cobra.ExactArgs(1),
	RunE:  checkCertificate,
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Review recorded authentication decisions",
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded decisions",
	RunE:  listAudit,
}

var (
	showJSON      bool
	principal     string
	auditUsername string
	auditAction   string
	auditLimit    int
)

func init() {
	// Root flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (optional)")

	// Show flags
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the certificate as JSON")

	// Check flags
	checkCmd.Flags().StringVarP(&principal, "principal", "p", "", "Principal to validate against (required)")
	checkCmd.MarkFlagRequired("principal")

	// Audit list flags
	auditListCmd.Flags().StringVarP(&auditUsername, "username", "u", "", "Filter by username")
	auditListCmd.Flags().StringVarP(&auditAction, "action", "a", "", "Filter by action")
	auditListCmd.Flags().IntVarP(&auditLimit, "limit", "n", 50, "Maximum entries to list")

	// Add commands
	auditCmd.AddCommand(auditListCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(auditCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig() error {
	if configPath == "" {
		cfg = config.Default()
		return nil
	}

	var err error
	cfg, err = config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	return nil
}

// initAuditDB opens the audit database when auditing is enabled.
// Returns a nil repository otherwise.
func initAuditDB() (*repository.AuditRepository, error) {
	if !cfg.Audit.Enabled {
		return nil, nil
	}

	var err error
	database, err = db.New(cfg.Audit.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}

	if err := db.RunMigrations(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repository.NewAuditRepository(database.DB), nil
}

// loadCertBlob reads a certificate either as a raw wire blob or in the
// authorized_keys "type base64data [comment]" file format.
func loadCertBlob(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate file: %w", err)
	}

	if cert.IsCertificate(data) {
		return data, nil
	}

	blob, _, err := sshutil.ParseAuthorizedBlob(data)
	if err != nil {
		return nil, fmt.Errorf("failed to extract certificate: %w", err)
	}

	return blob, nil
}

func showCertificate(cmd *cobra.Command, args []string) error {
	blob, err := loadCertBlob(args[0])
	if err != nil {
		return err
	}

	c, err := cert.Decode(blob)
	if err != nil {
		return fmt.Errorf("failed to decode certificate: %w", err)
	}

	summary := summarize(c, blob)

	if showJSON {
		out, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Type: %s %s certificate\n", summary.Algorithm, summary.Type)
	fmt.Printf("Fingerprint: %s\n", summary.Fingerprint)
	fmt.Printf("Key ID: %q\n", summary.KeyID)
	fmt.Printf("Serial: %d\n", summary.Serial)
	fmt.Printf("Valid: %s\n", formatWindow(c.ValidAfter, c.ValidBefore))

	if len(summary.Principals) == 0 {
		fmt.Printf("Principals: (any)\n")
	} else {
		fmt.Printf("Principals:\n")
		for _, p := range summary.Principals {
			fmt.Printf("        %s\n", p)
		}
	}

	printTuples("Critical Options", summary.CriticalOptions)
	printTuples("Extensions", summary.Extensions)

	return nil
}

func checkCertificate(cmd *cobra.Command, args []string) error {
	if err := initConfig(); err != nil {
		return err
	}

	auditRepo, err := initAuditDB()
	if err != nil {
		return err
	}
	if database != nil {
		defer database.Close()
	}

	blob, err := loadCertBlob(args[0])
	if err != nil {
		return err
	}

	log := logging.New(cfg.Logging)
	authenticator := auth.NewAuthenticator(auditRepo, log)

	verdict := authenticator.Check(blob, principal)
	if !verdict.Valid {
		return fmt.Errorf("certificate is not valid: %s", verdict.Reason)
	}

	fmt.Printf("Certificate is valid for principal %q\n", principal)
	return nil
}

func listAudit(cmd *cobra.Command, args []string) error {
	if err := initConfig(); err != nil {
		return err
	}

	if !cfg.Audit.Enabled {
		return fmt.Errorf("auditing is not enabled in the configuration")
	}

	auditRepo, err := initAuditDB()
	if err != nil {
		return err
	}
	defer database.Close()

	logs, err := auditRepo.List(auditUsername, auditAction, auditLimit)
	if err != nil {
		return fmt.Errorf("failed to list audit entries: %w", err)
	}

	if len(logs) == 0 {
		fmt.Println("No audit entries found")
		return nil
	}

	fmt.Printf("\nTotal entries: %d\n\n", len(logs))
	fmt.Printf("%-20s %-12s %-15s %-8s %s\n", "Timestamp", "Action", "Username", "Result", "Reason")
	fmt.Println("--------------------------------------------------------------------------------")

	for _, entry := range logs {
		result := "denied"
		if entry.Success {
			result = "ok"
		}
		fmt.Printf("%-20s %-12s %-15s %-8s %s\n",
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.Action,
			entry.Username,
			result,
			entry.Reason,
		)
	}

	return nil
}

func summarize(c *cert.Certificate, blob []byte) *models.CertificateSummary {
	return &models.CertificateSummary{
		Algorithm:       c.Algorithm,
		Fingerprint:     sshutil.Fingerprint(blob),
		Serial:          c.Serial,
		Type:            c.Type.String(),
		KeyID:           c.KeyID,
		Principals:      c.Principals,
		ValidAfter:      time.Unix(int64(c.ValidAfter), 0),
		ValidBefore:     time.Unix(int64(c.ValidBefore), 0),
		CriticalOptions: c.CriticalOptions,
		Extensions:      c.Extensions,
	}
}

func formatWindow(after, before uint64) string {
	if after == 0 && before == 0 {
		return "forever"
	}
	from := "beginning of time"
	if after != 0 {
		from = time.Unix(int64(after), 0).Format("2006-01-02T15:04:05")
	}
	to := "forever"
	if before != 0 {
		to = time.Unix(int64(before), 0).Format("2006-01-02T15:04:05")
	}
	return fmt.Sprintf("from %s to %s", from, to)
}

func printTuples(title string, tuples map[string]string) {
	if len(tuples) == 0 {
		fmt.Printf("%s: (none)\n", title)
		return
	}

	names := make([]string, 0, len(tuples))
	for name := range tuples {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("%s:\n", title)
	for _, name := range names {
		if tuples[name] == "" {
			fmt.Printf("        %s\n", name)
		} else {
			fmt.Printf("        %s %q\n", name, tuples[name])
		}
	}
}
