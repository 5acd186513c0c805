package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ikalang/ika-backend/internal/domain"
	"github.com/ikalang/ika-backend/internal/service/engine"
)

func newLookupCmd(opts *rootOptions) *cobra.Command {
	var direction string

	cmd := &cobra.Command{
		Use:   "lookup <text>",
		Short: "Exact dictionary lookup with suggestions on a miss",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, done, err := opts.loadEngine(cmd)
			if err != nil {
				return err
			}
			defer done()

			res, err := svc.Lookup(cmd.Context(), engine.LookupInput{
				Text:      strings.Join(args, " "),
				Direction: domain.Direction(direction),
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVarP(&direction, "direction", "d", string(domain.DirectionEnToIka), "en_to_ika or ika_to_en")
	return cmd
}

func newTranslateCmd(opts *rootOptions) *cobra.Command {
	var in engine.TranslateInput
	var mode string

	cmd := &cobra.Command{
		Use:   "translate <text>",
		Short: "Run the translation pipeline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, done, err := opts.loadEngine(cmd)
			if err != nil {
				return err
			}
			defer done()

			in.Text = strings.Join(args, " ")
			in.Mode = domain.TranslateMode(mode)
			res, err := svc.Translate(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", string(domain.TranslateModeAuto), "auto, en_to_ika or ika_to_en")
	cmd.Flags().StringVar(&in.Tense, "tense", "", "tense marker to apply (e.g. past)")
	cmd.Flags().BoolVar(&in.Negate, "negate", false, "prepend the negation marker")
	cmd.Flags().BoolVar(&in.Question, "question", false, "prepend the yes/no question marker")
	return cmd
}

func newChunkCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chunk <text>",
		Short: "Greedy longest-match phrasebank chunking",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, done, err := opts.loadEngine(cmd)
			if err != nil {
				return err
			}
			defer done()

			res, err := svc.ChunkTranslate(cmd.Context(), engine.ChunkInput{Text: strings.Join(args, " ")})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var (
		kind, length, source string
		seed                 uint64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compose a poem, story or lecture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, done, err := opts.loadEngine(cmd)
			if err != nil {
				return err
			}
			defer done()

			in := engine.GenerateInput{
				Kind:   domain.Kind(kind),
				Length: domain.Length(length),
				Source: domain.GenerationSource(source),
			}
			if cmd.Flags().Changed("seed") {
				in.Seed = &seed
			}
			res, err := svc.Generate(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "poem, story or lecture")
	cmd.Flags().StringVarP(&length, "length", "l", "", "short, medium or long")
	cmd.Flags().StringVar(&source, "source", "", "templates or pools")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for reproducible output")
	_ = cmd.MarkFlagRequired("kind")
	return cmd
}

func newNaturalizeCmd(opts *rootOptions) *cobra.Command {
	var (
		tone, length string
		seed         uint64
	)

	cmd := &cobra.Command{
		Use:   "naturalize <intent>",
		Short: "Express an English intent as natural Ika",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, done, err := opts.loadEngine(cmd)
			if err != nil {
				return err
			}
			defer done()

			in := engine.NaturalizeInput{
				IntentText: strings.Join(args, " "),
				Tone:       domain.Tone(tone),
				Length:     domain.Length(length),
			}
			if cmd.Flags().Changed("seed") {
				in.Seed = &seed
			}
			res, err := svc.Naturalize(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVarP(&tone, "tone", "t", "", "polite (default), respectful, neutral, formal, casual, poetic or romantic")
	cmd.Flags().StringVarP(&length, "length", "l", "", "short, medium or long")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for reproducible output")
	return cmd
}

func newPhonemesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "phonemes <text>",
		Short: "Wrap known words in SSML phoneme tags",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, done, err := opts.loadEngine(cmd)
			if err != nil {
				return err
			}
			defer done()

			ssml, err := svc.AnnotatePhonemes(cmd.Context(), engine.PhonemesInput{Text: strings.Join(args, " ")})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write([]byte(ssml + "\n"))
			return err
		},
	}
}
