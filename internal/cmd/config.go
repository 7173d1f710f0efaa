package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/huh"

	"ramos/internal/config"
)

// ConfigCmd groups settings commands
type ConfigCmd struct {
	Show  ConfigShowCmd  `cmd:"show" help:"Show current settings" default:"1"`
	Set   ConfigSetCmd   `cmd:"set" help:"Change a setting"`
	Reset ConfigResetCmd `cmd:"reset" help:"Restore all settings to their defaults"`
}

// ConfigShowCmd prints the registry with current values
type ConfigShowCmd struct{}

// Run executes the show command
func (s *ConfigShowCmd) Run(cli *CLI) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tVALUE\tDESCRIPTION")
	for _, opt := range config.Options {
		fmt.Fprintf(w, "%s\t%s\t%s\n", opt.Key, cli.Container.Config.DisplayValue(opt), opt.Description)
	}
	return w.Flush()
}

// ConfigSetCmd changes one setting. With no arguments it prompts
// interactively for both the option and the value.
type ConfigSetCmd struct {
	Key   string `arg:"" optional:"" help:"Option key (e.g. MAX_BRANCHES)"`
	Value string `arg:"" optional:"" help:"New value"`
}

// Run executes the set command
func (s *ConfigSetCmd) Run(cli *CLI) error {
	key := config.Key(s.Key)
	value := s.Value

	if s.Key == "" {
		selected, err := promptForOption()
		if err != nil {
			return err
		}
		key = selected
	}

	opt, ok := config.Lookup(key)
	if !ok {
		return fmt.Errorf("unknown option %q", key)
	}

	if value == "" {
		entered, err := promptForValue(cli, opt)
		if err != nil {
			return err
		}
		value = entered
	}

	if err := cli.Container.Config.Update(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	fmt.Printf("%s set to %s\n", opt.Key, cli.Container.Config.DisplayValue(opt))
	return nil
}

func promptForOption() (config.Key, error) {
	options := make([]huh.Option[config.Key], len(config.Options))
	for i, opt := range config.Options {
		options[i] = huh.NewOption(fmt.Sprintf("%s - %s", opt.Label, opt.Description), opt.Key)
	}

	var key config.Key
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[config.Key]().
			Title("Setting").
			Options(options...).
			Value(&key),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return key, nil
}

func promptForValue(cli *CLI, opt config.Option) (string, error) {
	title := opt.Label
	if opt.IsNumeric() && opt.Numeric.Unit != "" {
		title = fmt.Sprintf("%s (%s)", opt.Label, opt.Numeric.Unit)
	}

	var value string
	input := huh.NewInput().
		Title(title).
		Description(opt.Description).
		Placeholder(cli.Container.Config.DisplayValue(opt)).
		Value(&value)

	if opt.IsNumeric() {
		input = input.Validate(func(raw string) error {
			_, err := config.ParseNumeric(opt, raw)
			return err
		})
	}

	form := huh.NewForm(huh.NewGroup(input))
	if err := form.Run(); err != nil {
		return "", err
	}
	return value, nil
}

// ConfigResetCmd restores defaults
type ConfigResetCmd struct {
	Force bool `help:"Skip the confirmation prompt" short:"f"`
}

// Run executes the reset command
func (r *ConfigResetCmd) Run(cli *CLI) error {
	if !r.Force {
		var confirmed bool
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Reset all settings to their defaults?").
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := cli.Container.Config.Reset(); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	fmt.Println("All settings restored to defaults")
	return nil
}
