package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	outingapp "github.com/alexanderramin/outing/internal/app"
	"github.com/alexanderramin/outing/internal/cli/formatter"
	"github.com/alexanderramin/outing/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var errLLMDisabled = errors.New("--ask needs the LLM; set OUTING_LLM_ENABLED=true")

type planFlags struct {
	budget    float64
	currency  string
	start     string
	end       string
	city      string
	party     int
	vibes     []string
	likes     []string
	dietary   []string
	noAlcohol bool
	family    bool
	walking   string
	indoors   bool
	ask       string
	asJSON    bool
}

func newPlanCmd(app *App) *cobra.Command {
	var f planFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan three alternative outings for a budget and time window",
		Example: `  outing plan --budget 150 --city Lisbon --start 18:00 --end 23:00 --vibe romantic
  outing plan --ask "dinner and drinks in Porto for four, about 200 euros, from 19:30"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			req := f.request()
			explicit := changedFields(cmd)

			if strings.TrimSpace(f.ask) != "" {
				if app.Intent == nil {
					return errLLMDisabled
				}
				draft, err := app.Intent.ParseOuting(ctx, f.ask)
				if err != nil {
					return err
				}
				req = outingapp.ApplyDraft(req, *draft, explicit)
				fmt.Fprint(cmd.ErrOrStderr(), formatter.FormatDraftNotes(req, draft.Warnings))
			}

			resp, err := app.Plan.Plan(ctx, outingapp.NewPlanRequest(req))
			if err != nil {
				return err
			}

			if f.asJSON {
				data, err := json.MarshalIndent(resp, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding response: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanResponse(resp))
			return nil
		},
	}

	f.register(cmd.Flags())

	return cmd
}

func (f *planFlags) register(flags *pflag.FlagSet) {
	flags.Float64Var(&f.budget, "budget", 0, "Total budget for the whole party")
	flags.StringVar(&f.currency, "currency", "EUR", "ISO currency code of the budget")
	flags.StringVar(&f.start, "start", "18:00", "Start time (HH:MM)")
	flags.StringVar(&f.end, "end", "23:00", "End time (HH:MM); earlier than start wraps past midnight")
	flags.StringVar(&f.city, "city", "", "City or neighbourhood to plan in")
	flags.IntVar(&f.party, "party", 2, "Number of people")
	flags.StringSliceVar(&f.vibes, "vibe", nil, "Vibe keywords (romantic, adventurous, relaxed, fancy, playful)")
	flags.StringSliceVar(&f.likes, "like", nil, "Things you like, matched against venue names")
	flags.StringSliceVar(&f.dietary, "dietary", nil, "Dietary needs, e.g. vegetarian")
	flags.BoolVar(&f.noAlcohol, "no-alcohol", false, "Avoid bars and alcohol-focused stops")
	flags.BoolVar(&f.family, "family", false, "Family-friendly ordering and venues")
	flags.StringVar(&f.walking, "walking", string(domain.WalkingMedium), "Walking tolerance: low, medium or high")
	flags.BoolVar(&f.indoors, "indoors", false, "Prefer indoor stops")
	flags.StringVar(&f.ask, "ask", "", "Describe the outing in plain words; explicit flags still win")
	flags.BoolVar(&f.asJSON, "json", false, "Print the response as JSON")
}

func (f planFlags) request() domain.OutingRequest {
	return domain.OutingRequest{
		Budget:    domain.Budget{Amount: f.budget, Currency: strings.ToUpper(strings.TrimSpace(f.currency))},
		StartTime: strings.TrimSpace(f.start),
		EndTime:   strings.TrimSpace(f.end),
		City:      strings.TrimSpace(f.city),
		PartySize: f.party,
		Preferences: domain.Preferences{
			Vibes:            f.vibes,
			Likes:            f.likes,
			Dietary:          f.dietary,
			AlcoholOK:        !f.noAlcohol,
			FamilyFriendly:   f.family,
			Walking:          domain.WalkingTolerance(strings.ToLower(strings.TrimSpace(f.walking))),
			IndoorsPreferred: f.indoors,
		},
	}
}

// changedFields maps flags set on the command line to draft field names.
func changedFields(cmd *cobra.Command) map[string]bool {
	names := map[string]string{
		"budget":     outingapp.FieldBudget,
		"currency":   outingapp.FieldCurrency,
		"start":      outingapp.FieldStart,
		"end":        outingapp.FieldEnd,
		"city":       outingapp.FieldCity,
		"party":      outingapp.FieldParty,
		"vibe":       outingapp.FieldVibe,
		"like":       outingapp.FieldLike,
		"dietary":    outingapp.FieldDietary,
		"no-alcohol": outingapp.FieldNoAlcohol,
		"family":     outingapp.FieldFamily,
		"walking":    outingapp.FieldWalking,
		"indoors":    outingapp.FieldIndoors,
	}
	explicit := make(map[string]bool)
	cmd.Flags().Visit(func(fl *pflag.Flag) {
		if field, ok := names[fl.Name]; ok {
			explicit[field] = true
		}
	})
	return explicit
}
