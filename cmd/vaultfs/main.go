package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hambosto/vaultfs/internal/constants"
	"github.com/hambosto/vaultfs/internal/fsops"
	"github.com/hambosto/vaultfs/internal/kd"
	"github.com/hambosto/vaultfs/internal/mount"
	"github.com/hambosto/vaultfs/internal/shell"
	"github.com/hambosto/vaultfs/internal/ui"
	"github.com/hambosto/vaultfs/internal/vault"
)

// Config holds application configuration, sourced from global flags.
type Config struct {
	VaultPath    string
	KDBinary     string
	DeletePasses int
}

// Dependencies holds all application dependencies.
type Dependencies struct {
	Terminal      *ui.Terminal
	Prompt        *ui.Prompt
	Authenticator kd.Authenticator
}

// NewDependencies creates and initializes all application dependencies.
func NewDependencies(config *Config) *Dependencies {
	var auth kd.Authenticator = kd.NeverAuthenticator{}
	if config.KDBinary != "" {
		auth = kd.NewExternalAuthenticator(config.KDBinary)
	}

	return &Dependencies{
		Terminal:      ui.NewTerminal(),
		Prompt:        ui.NewPrompt(),
		Authenticator: auth,
	}
}

// Application encapsulates the main application logic.
type Application struct {
	deps   *Dependencies
	config *Config
}

// NewApplication creates a new application instance.
func NewApplication(config *Config) *Application {
	return &Application{deps: NewDependencies(config), config: config}
}

func (a *Application) initializeTerminal() {
	a.deps.Terminal.Reset()
	a.deps.Terminal.Banner(a.config.VaultPath)
}

// RunCreate bootstraps a deniable vault: a real volume at fsid 0, a
// decoy volume at fsid 1, and, if the operator confirms, an alias of
// the decoy into slot 2 under the real password, matching the canonical
// deployment described in spec.md §4.4.
func (a *Application) RunCreate() error {
	a.initializeTerminal()

	if vault.Exists(a.config.VaultPath) {
		return fmt.Errorf("vault already exists at %s", a.config.VaultPath)
	}

	realPassword, err := a.deps.Prompt.GetNewPassword("real volume")
	if err != nil {
		return fmt.Errorf("failed to get real volume password: %w", err)
	}
	decoyPassword, err := a.deps.Prompt.GetNewPassword("decoy volume")
	if err != nil {
		return fmt.Errorf("failed to get decoy volume password: %w", err)
	}

	c, err := vault.Open(a.config.VaultPath)
	if err != nil {
		return fmt.Errorf("failed to open vault: %w", err)
	}
	defer c.Close()

	if err := c.StampRandomSlotsWithProgress(); err != nil {
		return fmt.Errorf("failed to initialize header slots: %w", err)
	}

	mgr := mount.New(c)

	realSession, err := mgr.CreateVolume(realPassword, 0)
	if err != nil {
		return fmt.Errorf("failed to create real volume: %w", err)
	}
	realSession.Close()

	decoySession, err := mgr.CreateVolume(decoyPassword, 1)
	if err != nil {
		return fmt.Errorf("failed to create decoy volume: %w", err)
	}
	decoySession.Close()

	bootstrap, err := a.deps.Prompt.Confirm("Alias the decoy volume into slot 2 under the real password?")
	if err != nil {
		return fmt.Errorf("failed to confirm alias bootstrap: %w", err)
	}
	if bootstrap {
		if err := mgr.AliasSlot(1, realPassword, 2); err != nil {
			return fmt.Errorf("failed to alias slot: %w", err)
		}
	}

	fmt.Println("vault created:", a.config.VaultPath)
	return nil
}

// RunMount mounts a single volume by trial decryption and drops into
// the interactive shell over its namespace.
func (a *Application) RunMount() error {
	a.initializeTerminal()

	if !vault.Exists(a.config.VaultPath) {
		return fmt.Errorf("no vault at %s", a.config.VaultPath)
	}

	c, err := vault.Open(a.config.VaultPath)
	if err != nil {
		return fmt.Errorf("failed to open vault: %w", err)
	}
	defer c.Close()

	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	password := string(passwordBytes)

	kdOK, err := a.deps.Authenticator.Authenticate(context.Background(), password)
	if err != nil {
		kdOK = false
	}

	mgr := mount.New(c)
	s, err := mgr.Mount(password, kdOK)
	if err != nil {
		return fmt.Errorf("mount failed: %w", err)
	}
	defer s.Close()

	shell.New(s, os.Stdin, os.Stdout).Run()
	return nil
}

// RunDestroy irrecoverably overwrites and removes the vault file, for
// when plausible deniability should extend to "no vault ever existed
// here" rather than just "I won't give you the real password."
func (a *Application) RunDestroy() error {
	a.initializeTerminal()

	if !vault.Exists(a.config.VaultPath) {
		return fmt.Errorf("no vault at %s", a.config.VaultPath)
	}

	confirmed, err := a.deps.Prompt.Confirm(fmt.Sprintf("Permanently destroy %s? This cannot be undone.", a.config.VaultPath))
	if err != nil {
		return fmt.Errorf("failed to confirm destroy: %w", err)
	}
	if !confirmed {
		return nil
	}

	return fsops.SecureDelete(a.config.VaultPath, a.config.DeletePasses)
}

func main() {
	config := &Config{}

	rootCmd := &cobra.Command{
		Use:     "vaultfs",
		Short:   "Encrypted vault filesystem with plausible deniability",
		Version: constants.AppVersion,
	}
	rootCmd.PersistentFlags().StringVar(&config.VaultPath, "vault", constants.DefaultVaultFileName, "path to the vault file")
	rootCmd.PersistentFlags().StringVar(&config.KDBinary, "kd-binary", "", "path to an external keystroke-dynamics authenticator (unset: kd_ok always false)")
	rootCmd.PersistentFlags().IntVar(&config.DeletePasses, "delete-passes", 3, "secure-delete overwrite passes")

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Bootstrap a new vault with a real and a decoy volume",
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewApplication(config).RunCreate()
		},
	}

	mountCmd := &cobra.Command{
		Use:   "mount",
		Short: "Mount a volume by trial decryption and open the shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewApplication(config).RunMount()
		},
	}

	destroyCmd := &cobra.Command{
		Use:   "destroy",
		Short: "Securely overwrite and remove the vault file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewApplication(config).RunDestroy()
		},
	}

	rootCmd.AddCommand(createCmd, mountCmd, destroyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Application error:", err)
		os.Exit(1)
	}
}
