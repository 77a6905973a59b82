// Command quizforge runs an interactive quiz against a document, or
// searches it for a keyword.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/quizforge/quizforge/internal/config"
	"github.com/quizforge/quizforge/internal/engine"
	"github.com/quizforge/quizforge/internal/quiz"
	"github.com/quizforge/quizforge/internal/session"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	good    = color.New(color.FgGreen)
	bad     = color.New(color.FgRed)
	note    = color.New(color.FgYellow)
)

func main() {
	var (
		file       = flag.String("file", "", "document to quiz from (pdf, docx, md, txt, csv, html)")
		questions  = flag.Int("questions", 0, "questions per batch")
		difficulty = flag.String("difficulty", "", "easy, medium or hard")
		typesFlag  = flag.String("types", "", "comma-separated question types (default all)")
		chunkSize  = flag.Int("chunk-size", 0, "characters per text chunk")
		overlap    = flag.Int("overlap", -1, "characters of overlap between chunks")
		search     = flag.String("search", "", "search for a keyword instead of quizzing")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: quizforge -file <document> [-search keyword]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := config.Load()
	if *questions > 0 {
		cfg.DefaultQuestionCount = *questions
	}
	if *difficulty != "" {
		cfg.DefaultDifficulty = *difficulty
	}
	if *chunkSize > 0 {
		cfg.DefaultChunkSize = *chunkSize
	}
	if *overlap >= 0 {
		cfg.DefaultChunkOverlap = *overlap
	}

	eng, err := engine.Open(*file)
	if err != nil {
		bad.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *search != "" {
		if err := runSearch(eng, *search); err != nil {
			bad.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Quizzing needs the model; searching does not.
	if cfg.OpenAIAPIKey == "" {
		bad.Fprintln(os.Stderr, "error: OPENAI_API_KEY is required")
		os.Exit(1)
	}

	types := quiz.DefaultTypes
	if *typesFlag != "" {
		types = nil
		for _, part := range strings.Split(*typesFlag, ",") {
			qt, err := quiz.ParseType(part)
			if err != nil {
				bad.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(2)
			}
			types = append(types, qt)
		}
	}

	if err := runQuiz(eng, cfg, types); err != nil {
		bad.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runSearch(eng *engine.Engine, keyword string) error {
	matches, err := eng.SearchText(keyword)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		note.Printf("no matches for %q\n", keyword)
		return nil
	}
	heading.Printf("%d page(s) mention %q:\n\n", len(matches), keyword)
	for _, m := range matches {
		note.Printf("page %d: ", m.Page)
		fmt.Printf("...%s...\n", m.Context)
	}
	return nil
}

func runQuiz(eng *engine.Engine, cfg config.Config, types []quiz.QuestionType) error {
	pages, err := eng.TotalPages()
	if err != nil {
		return err
	}
	chunks, err := eng.TextChunks(cfg.DefaultChunkSize, cfg.DefaultChunkOverlap)
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		return fmt.Errorf("document contains no usable text")
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	client := quiz.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	defer client.Close()
	generator := quiz.NewGenerator(client, log, nil)

	sess := session.New(chunks, generator)

	heading.Printf("Loaded %s: %d page(s), %d chunk(s)\n", eng.Store().Name(), pages, len(chunks))

	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	for {
		note.Println("\nGenerating questions...")
		start := time.Now()
		batch, err := sess.NextBatch(ctx, cfg.DefaultQuestionCount, types, cfg.DefaultDifficulty)
		if err != nil {
			return err
		}
		note.Printf("%d question(s) ready (%.1fs)\n", len(batch), time.Since(start).Seconds())

		for i, q := range batch {
			askQuestion(ctx, reader, generator, sess.Stats, i+1, len(batch), q)
		}

		printStats(sess.Stats)

		fmt.Print("\nAnother round? [y/N] ")
		line, err := reader.ReadString('\n')
		if err != nil || !strings.EqualFold(strings.TrimSpace(line), "y") {
			break
		}
	}

	heading.Println("\nFinal results")
	printStats(sess.Stats)
	return nil
}

func askQuestion(ctx context.Context, reader *bufio.Reader, generator *quiz.Generator, stats *session.Stats, n, total int, q quiz.Question) {
	heading.Printf("\nQuestion %d/%d (%s)\n", n, total, q.Type.Label())
	fmt.Println(q.Question)
	for i, opt := range q.Options {
		fmt.Printf("  %c) %s\n", 'A'+i, opt)
	}

	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		answer := strings.TrimSpace(line)

		switch strings.ToLower(answer) {
		case "":
			continue
		case "skip":
			note.Println("skipped")
			return
		case "quit", "exit":
			printStats(stats)
			os.Exit(0)
		}

		result := generator.Validate(ctx, q, answer)
		stats.Record(q, result)
		printResult(q, result)
		return
	}
}

func printResult(q quiz.Question, r quiz.Result) {
	if r.Correct {
		good.Println("Correct!")
	} else {
		bad.Println("Incorrect.")
		if r.CorrectAnswer != "" {
			fmt.Printf("Answer: %s\n", r.CorrectAnswer)
		}
	}
	if q.Type == quiz.ShortAnswer {
		if r.Score > 0 {
			fmt.Printf("Score: %d/100\n", r.Score)
		}
		if r.Feedback != "" {
			fmt.Printf("Feedback: %s\n", r.Feedback)
		}
		if r.SampleAnswer != "" {
			fmt.Printf("Sample answer: %s\n", r.SampleAnswer)
		}
	} else if r.Explanation != "" {
		fmt.Printf("Explanation: %s\n", r.Explanation)
	}
}

func printStats(stats *session.Stats) {
	if stats.TotalQuestions == 0 {
		note.Println("No questions answered yet.")
		return
	}
	heading.Println("\nStatistics")
	fmt.Printf("Answered: %d  Correct: %d  Accuracy: %.1f%%\n",
		stats.TotalQuestions, stats.CorrectAnswers, stats.Accuracy())
	for _, qt := range quiz.DefaultTypes {
		ts := stats.ByType[qt]
		if ts == nil || ts.Total == 0 {
			continue
		}
		fmt.Printf("  %-16s %d/%d\n", qt.Label(), ts.Correct, ts.Total)
	}
}
