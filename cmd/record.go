package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/tomato/internal/logging"
	"github.com/sadopc/tomato/internal/record"
)

func newRecordCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Show or replace the stored record",
		Long: `The record is a single {id, note} pair kept in a JSON file next to the
session history.`,
	}
	cmd.AddCommand(newRecordGetCmd(rt), newRecordPutCmd(rt))
	return cmd
}

func newRecordGetCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the stored record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := rt.openRecord()
			if err != nil {
				return err
			}
			r, err := rs.Get()
			if errors.Is(err, record.ErrEmpty) {
				return errors.New("no record saved yet; use `tomato record put`")
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id:   %s\n", r.ID)
			fmt.Fprintf(out, "note: %s\n", r.Note)
			return nil
		},
	}
}

func newRecordPutCmd(rt *runtime) *cobra.Command {
	var id, note string
	cmd := &cobra.Command{
		Use:   "put",
		Short: "Replace the stored record",
		Long: `Replace the stored record. A flag that is left out keeps the value
already stored, if the current record can be read.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := rt.openRecord()
			if err != nil {
				return err
			}

			r, err := baseRecord(rs.Get)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("id") {
				r.ID = id
			}
			if cmd.Flags().Changed("note") {
				r.Note = note
			}

			if err := rs.Put(r); err != nil {
				return err
			}
			logging.Info("record saved", logging.KeyPath, rs.Path())
			fmt.Fprintf(cmd.OutOrStdout(), "Saved record %q to %s\n", r.ID, rs.Path())
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "record id")
	cmd.Flags().StringVar(&note, "note", "", "record note")
	cmd.MarkFlagsOneRequired("id", "note")
	return cmd
}

// baseRecord is the starting point for a partial put: the stored record, or
// an empty one when the file is empty or unreadable as a record. Any other
// failure is returned.
func baseRecord(get func() (record.Record, error)) (record.Record, error) {
	r, err := get()
	switch {
	case err == nil:
		return r, nil
	case record.IsDecodeError(err):
		if !errors.Is(err, record.ErrEmpty) {
			logging.With(logging.KeyOperation, "record put").
				Warn("replacing malformed record", logging.KeyError, err)
		}
		return record.Record{}, nil
	default:
		return record.Record{}, err
	}
}
