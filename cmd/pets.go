// ABOUTME: Pet commands for the petcare CLI
// ABOUTME: List, inspect, edit and care for the logged-in user's pets

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/markalston/petcare-cli/internal/client"
	"github.com/markalston/petcare-cli/internal/tui/widgets"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

// batchLimit bounds concurrent care actions.
const batchLimit = 4

// petFlags holds the values of the pet field flags.
type petFlags struct {
	name   string
	typ    string
	color  string
	energy int
	fun    int
	hungry bool
}

var (
	createFlags petFlags
	updateFlags petFlags
	deleteYes   bool
)

func (f *petFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Pet name")
	fs.StringVar(&f.typ, "type", "", "Pet type: dog, cat or fish")
	fs.StringVar(&f.color, "color", "", "Pet color: brown, violet or striped")
	fs.IntVar(&f.energy, "energy", client.MaxStat, "Energy (0-100)")
	fs.IntVar(&f.fun, "fun", client.MaxStat, "Fun (0-100)")
	fs.BoolVar(&f.hungry, "hungry", false, "Whether the pet is hungry")
}

// petPatch is a partial update. Nil fields are left unchanged.
type petPatch struct {
	Name   *string
	Type   *string
	Color  *string
	Energy *int
	Fun    *int
	Hungry *bool
}

// patchFrom keeps only the flags that were set on the command line.
func (f *petFlags) patchFrom(fs *pflag.FlagSet) petPatch {
	var p petPatch
	if fs.Changed("name") {
		p.Name = &f.name
	}
	if fs.Changed("type") {
		p.Type = &f.typ
	}
	if fs.Changed("color") {
		p.Color = &f.color
	}
	if fs.Changed("energy") {
		p.Energy = &f.energy
	}
	if fs.Changed("fun") {
		p.Fun = &f.fun
	}
	if fs.Changed("hungry") {
		p.Hungry = &f.hungry
	}
	return p
}

// empty reports whether the patch changes nothing.
func (p petPatch) empty() bool {
	return p == petPatch{}
}

// apply writes the patch onto in.
func (p petPatch) apply(in *client.PetInput) error {
	if p.Name != nil {
		in.Name = *p.Name
	}
	if p.Type != nil {
		t, err := client.ParsePetType(*p.Type)
		if err != nil {
			return err
		}
		in.Type = t
	}
	if p.Color != nil {
		c, err := client.ParsePetColor(*p.Color)
		if err != nil {
			return err
		}
		in.Color = c
	}
	if p.Energy != nil {
		in.Energy = *p.Energy
	}
	if p.Fun != nil {
		in.Fun = *p.Fun
	}
	if p.Hungry != nil {
		in.Hungry = *p.Hungry
	}
	return nil
}

var petsCmd = &cobra.Command{
	Use:     "pets",
	Aliases: []string{"pet"},
	Short:   "Manage your pets",
}

var petsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your pets",
	Args:  cobra.NoArgs,
	Run: withEnv(func(ctx context.Context, w io.Writer, env *environment, _ []string) int {
		return runPetsList(ctx, w, env, false)
	}),
}

var petsShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one pet",
	Args:  cobra.ExactArgs(1),
	Run: withEnv(func(ctx context.Context, w io.Writer, env *environment, args []string) int {
		return runPetShow(ctx, w, env, args[0])
	}),
}

var petsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a pet",
	Long: `Create a pet. Without --name, --type and --color an interactive form is shown.

Examples:
  petcare pets create --name Rex --type dog --color brown`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withEnv(func(ctx context.Context, w io.Writer, env *environment, _ []string) int {
			fs := cmd.Flags()
			in := client.NewPetInput("", "", "")
			if fs.Changed("name") && fs.Changed("type") && fs.Changed("color") {
				if err := createFlags.patchFrom(fs).apply(&in); err != nil {
					fmt.Fprintf(w, "Error: %v\n", err)
					return exitError
				}
			} else if err := petForm(&in).Run(); err != nil {
				return formError(w, err)
			}
			return runPetCreate(ctx, w, env, in)
		})(cmd, args)
	},
}

var petsUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Change a pet's fields",
	Long: `Change a pet's fields. Only the flags given are changed.

Examples:
  petcare pets update 3 --name Max --energy 80`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withEnv(func(ctx context.Context, w io.Writer, env *environment, args []string) int {
			return runPetUpdate(ctx, w, env, args[0], updateFlags.patchFrom(cmd.Flags()), false)
		})(cmd, args)
	},
}

var petsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a pet",
	Args:  cobra.ExactArgs(1),
	Run: withEnv(func(ctx context.Context, w io.Writer, env *environment, args []string) int {
		if !deleteYes && !confirm(fmt.Sprintf("Delete pet %s?", args[0])) {
			fmt.Fprintln(w, "Aborted.")
			return exitError
		}
		return runPetDelete(ctx, w, env, args[0], false)
	}),
}

func actionCmd(action client.Action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(action) + " ID...",
		Short: short,
		Long: short + `. Several IDs are handled concurrently.

Exit codes:
  0 - Every pet was handled
  1 - At least one pet failed
  2 - Error (not logged in, invalid ID, session rejected)`,
		Args: cobra.MinimumNArgs(1),
		Run: withEnv(func(ctx context.Context, w io.Writer, env *environment, args []string) int {
			return runPetAction(ctx, w, env, action, args)
		}),
	}
}

func init() {
	rootCmd.AddCommand(petsCmd)
	petsCmd.AddCommand(petsListCmd, petsShowCmd, petsCreateCmd, petsUpdateCmd, petsDeleteCmd,
		actionCmd(client.ActionFeed, "Feed pets"),
		actionCmd(client.ActionPlay, "Play with pets"),
		actionCmd(client.ActionSleep, "Put pets to sleep"),
	)
	createFlags.register(petsCreateCmd.Flags())
	updateFlags.register(petsUpdateCmd.Flags())
	petsDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
}

// confirm asks a yes/no question on the terminal.
func confirm(question string) bool {
	var ok bool
	if err := huh.NewConfirm().Title(question).Affirmative("Delete").Negative("Cancel").Value(&ok).Run(); err != nil {
		return false
	}
	return ok
}

// petForm edits in interactively.
func petForm(in *client.PetInput) *huh.Form {
	typeOpts := make([]huh.Option[client.PetType], len(client.PetTypes))
	for i, t := range client.PetTypes {
		typeOpts[i] = huh.NewOption(titleCase(string(t)), t)
	}
	colorOpts := make([]huh.Option[client.PetColor], len(client.PetColors))
	for i, c := range client.PetColors {
		colorOpts[i] = huh.NewOption(titleCase(string(c)), c)
	}
	if in.Type == "" {
		in.Type = client.Dog
	}
	if in.Color == "" {
		in.Color = client.Brown
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&in.Name).Validate(required("name")),
			huh.NewSelect[client.PetType]().Title("Type").Options(typeOpts...).Value(&in.Type),
			huh.NewSelect[client.PetColor]().Title("Color").Options(colorOpts...).Value(&in.Color),
		),
	)
}

// parseID parses a positive pet ID.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid pet ID %q", s)
	}
	return id, nil
}

// runPetsList prints the user's pets, or every pet for admin
func runPetsList(ctx context.Context, w io.Writer, env *environment, admin bool) int {
	if !requireLogin(w, env) {
		return exitError
	}

	var pets []client.Pet
	var err error
	if admin {
		pets, err = env.client.AdminListPets(ctx)
	} else {
		pets, err = env.client.ListPets(ctx)
	}
	if err != nil {
		return reportError(w, env, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(pets))
	} else {
		fmt.Fprintln(w, formatPetsHuman(pets))
	}
	return exitOK
}

// runPetShow prints a single pet
func runPetShow(ctx context.Context, w io.Writer, env *environment, rawID string) int {
	id, err := parseID(rawID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}
	if !requireLogin(w, env) {
		return exitError
	}

	pet, err := env.client.GetPet(ctx, id)
	if err != nil {
		return reportError(w, env, err)
	}
	printPet(w, pet)
	return exitOK
}

// runPetCreate creates a pet
func runPetCreate(ctx context.Context, w io.Writer, env *environment, in client.PetInput) int {
	if !requireLogin(w, env) {
		return exitError
	}
	pet, err := env.client.CreatePet(ctx, in)
	if err != nil {
		return reportError(w, env, err)
	}
	printPet(w, pet)
	return exitOK
}

// runPetUpdate fetches the pet, applies patch and saves it. Admins may
// update any pet; admin updates look the pet up in the full list.
func runPetUpdate(ctx context.Context, w io.Writer, env *environment, rawID string, patch petPatch, admin bool) int {
	id, err := parseID(rawID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}
	if patch.empty() {
		fmt.Fprintln(w, "Error: nothing to change. Pass at least one of --name, --type, --color, --energy, --fun, --hungry.")
		return exitError
	}
	if !requireLogin(w, env) {
		return exitError
	}

	current, err := findPet(ctx, env, id, admin)
	if err != nil {
		return reportError(w, env, err)
	}

	in := current.Input()
	if err := patch.apply(&in); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	var updated *client.Pet
	if admin {
		updated, err = env.client.AdminUpdatePet(ctx, id, in)
	} else {
		updated, err = env.client.UpdatePet(ctx, id, in)
	}
	if err != nil {
		return reportError(w, env, err)
	}
	printPet(w, updated)
	return exitOK
}

func findPet(ctx context.Context, env *environment, id int64, admin bool) (*client.Pet, error) {
	if !admin {
		return env.client.GetPet(ctx, id)
	}
	pets, err := env.client.AdminListPets(ctx)
	if err != nil {
		return nil, err
	}
	for i := range pets {
		if pets[i].ID == id {
			return &pets[i], nil
		}
	}
	return nil, fmt.Errorf("pet %d: %w", id, client.ErrNotFound)
}

// runPetDelete deletes a pet
func runPetDelete(ctx context.Context, w io.Writer, env *environment, rawID string, admin bool) int {
	id, err := parseID(rawID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}
	if !requireLogin(w, env) {
		return exitError
	}

	if admin {
		err = env.client.AdminDeletePet(ctx, id)
	} else {
		err = env.client.DeletePet(ctx, id)
	}
	if err != nil {
		return reportError(w, env, err)
	}
	fmt.Fprintf(w, "Deleted pet %d.\n", id)
	return exitOK
}

// actionResult is the outcome of one care action in a batch.
type actionResult struct {
	ID  int64  `json:"id"`
	OK  bool   `json:"ok"`
	Err string `json:"error,omitempty"`
	err error
}

// runPetAction performs action on every ID, batchLimit at a time
func runPetAction(ctx context.Context, w io.Writer, env *environment, action client.Action, rawIDs []string) int {
	ids := make([]int64, len(rawIDs))
	for i, raw := range rawIDs {
		id, err := parseID(raw)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitError
		}
		ids[i] = id
	}
	if !requireLogin(w, env) {
		return exitError
	}

	results := make([]actionResult, len(ids))
	var g errgroup.Group
	g.SetLimit(batchLimit)
	for i, id := range ids {
		g.Go(func() error {
			err := env.client.Perform(ctx, id, action)
			results[i] = actionResult{ID: id, OK: err == nil, err: err}
			if err != nil {
				results[i].Err = err.Error()
			}
			return nil
		})
	}
	g.Wait()

	failed := 0
	for _, r := range results {
		if r.err == nil {
			continue
		}
		failed++
		if client.IsAuthError(r.err) {
			return reportError(w, env, r.err)
		}
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(results))
	} else {
		fmt.Fprintln(w, formatActionHuman(action, results))
	}

	if failed > 0 {
		return exitFailure
	}
	return exitOK
}

// formatActionHuman formats batch results for human readability
func formatActionHuman(action client.Action, results []actionResult) string {
	var sb strings.Builder
	failed := 0
	for _, r := range results {
		if r.err == nil {
			fmt.Fprintf(&sb, "✓ %s pet %d\n", titleCase(action.Past()), r.ID)
		} else {
			failed++
			fmt.Fprintf(&sb, "✗ pet %d: %v\n", r.ID, r.err)
		}
	}
	if failed > 0 {
		fmt.Fprintf(&sb, "\nFAILED: %d of %d pet(s)", failed, len(results))
	} else {
		fmt.Fprintf(&sb, "\nDONE: %d pet(s)", len(results))
	}
	return sb.String()
}

func printPet(w io.Writer, pet *client.Pet) {
	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(pet))
	} else {
		fmt.Fprintln(w, formatPetHuman(pet))
	}
}

// formatPetHuman formats one pet for human readability
func formatPetHuman(p *client.Pet) string {
	return fmt.Sprintf(`ID:     %d
Name:   %s
Type:   %s
Color:  %s
Energy: %-3d %s
Fun:    %-3d %s
Hungry: %s`, p.ID, p.Name, titleCase(string(p.Type)), titleCase(string(p.Color)),
		p.Energy, widgets.CompactStatBar(p.Energy, 10),
		p.Fun, widgets.CompactStatBar(p.Fun, 10),
		yesNo(p.Hungry))
}

// formatPetsHuman renders pets as a table
func formatPetsHuman(pets []client.Pet) string {
	if len(pets) == 0 {
		return "No pets yet. Create one with 'petcare pets create'."
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "TYPE", "COLOR", "ENERGY", "FUN", "HUNGRY")
	for _, p := range pets {
		t.Row(
			strconv.FormatInt(p.ID, 10),
			p.Name,
			titleCase(string(p.Type)),
			titleCase(string(p.Color)),
			strconv.Itoa(p.Energy),
			strconv.Itoa(p.Fun),
			yesNo(p.Hungry),
		)
	}
	return t.String()
}

func formatJSON(v interface{}) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// titleCase turns "STRIPED" into "Striped".
func titleCase(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
