package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/akeren/bizguard-leads/domain/submission"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func runExport(ctx context.Context, store submission.SubmissionRepository, rawCategory string, w io.Writer) error {
	category, ok := submission.ParseCategory(rawCategory)
	if !ok {
		return fmt.Errorf("unknown category %q (want waitlist or subscription)", rawCategory)
	}

	records, err := store.List(ctx, category)
	if err != nil {
		return err
	}
	if records == nil {
		records = []submission.Record{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

func runStats(ctx context.Context, store submission.SubmissionRepository, w io.Writer) error {
	title := cases.Title(language.English)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	var total int64
	for _, category := range submission.Categories {
		count, err := store.Count(ctx, category)
		if err != nil {
			return err
		}
		total += count
		fmt.Fprintf(tw, "%s\t%d\n", title.String(string(category)), count)
	}
	fmt.Fprintf(tw, "%s\t%d\n", title.String("total"), total)

	return tw.Flush()
}
