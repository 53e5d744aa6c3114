package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strikeup/domain"
	"strikeup/internal"
	"strikeup/storage"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

func main() {
	dbPath := flag.String("db", "./data/strikeup", "Path to badger DB")
	collection := flag.String("collection", "keys", "keys, users, sessions, matches or messages")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	if *collection == "keys" {
		if err = fillKeys(db, table); err != nil {
			log.Fatal(err)
		}
		table.Render()
		return
	}

	snapshot, err := storage.LoadSnapshot(storage.NewBadgerAdapter(db, logs.GetLoggerFromLevel(slog.LevelError)))
	if err != nil {
		log.Fatal(err)
	}

	switch *collection {
	case "users":
		table.SetHeader([]string{"ID", "Name", "Email", "Location", "Skill", "Average", "High", "Games", "Matches"})
		for _, u := range snapshot.Users {
			table.Append([]string{
				strconv.Itoa(int(u.ID)), u.Name, u.Email, u.Location, string(u.SkillLevel),
				strconv.Itoa(u.Average), strconv.Itoa(u.HighScore), strconv.Itoa(u.GamesPlayed), strconv.Itoa(u.Matches),
			})
		}
	case "sessions":
		table.SetHeader([]string{"ID", "Location", "When", "Skill", "Spots", "Organizer", "Attendees"})
		for _, s := range snapshot.Sessions {
			attendees := lo.Map(s.Attendees, func(id domain.UserID, _ int) string { return strconv.Itoa(int(id)) })
			table.Append([]string{
				strconv.Itoa(int(s.ID)), s.Location, s.DateTime.Format("2006-01-02 15:04"), string(s.SkillLevel),
				fmt.Sprintf("%d/%d", s.Participants, s.MaxParticipants), strconv.Itoa(int(s.Organizer)), strings.Join(attendees, ","),
			})
		}
	case "matches":
		table.SetHeader([]string{"ID", "User 1", "User 2", "When", "Status"})
		for _, m := range snapshot.Matches {
			table.Append([]string{
				strconv.Itoa(int(m.ID)), strconv.Itoa(int(m.User1)), strconv.Itoa(int(m.User2)),
				m.Timestamp.Format("2006-01-02 15:04:05"), string(m.Status),
			})
		}
	case "messages":
		table.SetHeader([]string{"ID", "From", "To", "When", "Read", "Content"})
		for _, m := range snapshot.Messages {
			table.Append([]string{
				strconv.Itoa(int(m.ID)), strconv.Itoa(int(m.FromUserID)), strconv.Itoa(int(m.ToUserID)),
				m.Timestamp.Format("2006-01-02 15:04:05"), strconv.FormatBool(m.Read), m.Content,
			})
		}
	default:
		log.Fatalf("Unknown collection %q", *collection)
	}
	table.Render()
}

func fillKeys(db *badger.DB, table *tablewriter.Table) error {
	table.SetHeader([]string{"Key", "Type", "Records", "Detail"})
	return db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(internal.DefaultPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(v []byte) error {
				row := internal.DefaultMapper(string(item.Key()), v)
				table.Append([]string{row.Key, row.Type, row.Count, row.Detail})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)

	db, err := badger.Open(opts)
	if err != nil {
		// A crashed writer leaves a log that needs truncation, which read-only mode refuses
		if strings.Contains(err.Error(), "Log truncate required") {
			fmt.Println("⚠️  Truncating the value log before reading")

			repairOpts := badger.DefaultOptions(path).
				WithLogger(nil).WithBypassLockGuard(true)

			db, err = badger.Open(repairOpts)
			if err != nil {
				return nil, fmt.Errorf("repair failed: %w", err)
			}
			_ = db.Close()
			return badger.Open(opts)
		}
		return nil, err
	}
	return db, nil
}
