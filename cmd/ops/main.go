package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vtrpza/todo/internal/ops"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "backup":
		if err := cmdBackup(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "backup failed:", err)
			os.Exit(1)
		}
	case "restore":
		if err := cmdRestore(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "restore failed:", err)
			os.Exit(1)
		}
	case "verify":
		if err := cmdVerify(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "verify failed:", err)
			os.Exit(1)
		}
	case "drill":
		if err := cmdDrill(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "drill failed:", err)
			os.Exit(1)
		}
	default:
		printUsage()
		os.Exit(2)
	}
}

func cmdBackup(args []string) error {
	fs := flag.NewFlagSet("backup", flag.ContinueOnError)
	dataDir := fs.String("data-dir", "data", "path to data directory")
	out := fs.String("out", "", "output archive path (.tar.gz)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *out == "" {
		*out = filepath.Join("backups", ops.DefaultArchiveName(time.Now().UTC()))
	}
	if err := ops.Backup(*dataDir, *out); err != nil {
		return err
	}
	fmt.Println(*out)
	return nil
}

func cmdRestore(args []string) error {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	archive := fs.String("archive", "", "input backup archive (.tar.gz)")
	target := fs.String("target-dir", "data-restored", "restore target directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *archive == "" {
		return fmt.Errorf("archive is required")
	}
	if err := ops.Restore(*archive, *target); err != nil {
		return err
	}

	report, err := ops.VerifyState(*target)
	if err != nil {
		return fmt.Errorf("restored, but state blob failed verification: %w", err)
	}
	printReport(report)
	return nil
}

func cmdVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	dataDir := fs.String("data-dir", "data", "path to data directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	report, err := ops.VerifyState(*dataDir)
	if err != nil {
		return err
	}
	printReport(report)
	return nil
}

func cmdDrill(args []string) error {
	fs := flag.NewFlagSet("drill", flag.ContinueOnError)
	dataDir := fs.String("data-dir", "data", "path to data directory")
	workDir := fs.String("work-dir", os.TempDir(), "workspace for the drill archive")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := os.MkdirAll(*workDir, 0o755); err != nil {
		return err
	}
	archive := filepath.Join(*workDir, ops.DefaultArchiveName(time.Now().UTC()))
	if err := ops.Backup(*dataDir, archive); err != nil {
		return err
	}
	defer os.Remove(archive)

	report, err := ops.Drill(archive)
	if err != nil {
		return err
	}
	fmt.Println("archive ok:", archive)
	printReport(report)
	return nil
}

func printReport(r ops.VerifyReport) {
	fmt.Printf("tasks: %d\n", r.Tasks)
	fmt.Printf("points: %d (nível %d)\n", r.Points, r.Level)
	fmt.Printf("streak: %d\n", r.Streak)
	fmt.Printf("challenges: %d\n", r.Challenges)
}

func printUsage() {
	fmt.Println("usage:")
	fmt.Println("  ops backup  --data-dir data --out backups/backup.tar.gz")
	fmt.Println("  ops restore --archive backups/backup.tar.gz --target-dir data-restored")
	fmt.Println("  ops verify  --data-dir data")
	fmt.Println("  ops drill   --data-dir data --work-dir /tmp")
}
