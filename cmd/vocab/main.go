// Command vocab is the offline study tool. It runs the same progress engine
// as the server against a local JSON file, so a learner can study without an
// account and sync later.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/hyeon/vocaflash/internal/catalog"
	"github.com/hyeon/vocaflash/internal/config"
	"github.com/hyeon/vocaflash/internal/logger"
	"github.com/hyeon/vocaflash/internal/progress"
	"github.com/hyeon/vocaflash/internal/progression"
	"github.com/hyeon/vocaflash/internal/repository/localfile"
)

const usage = `usage: vocab <command> [arguments]

commands:
  study <wordId> <correct|wrong>   record one answer
  due                              list words due for review today
  stats                            show box counts and progress
  goal <n>                         set the daily goal
  reset                            wipe all local study data
`

func main() {
	cfg := config.Load()

	log := logger.New(logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	logger.SetDefault(log)

	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	store, err := localfile.NewStore(cfg.DataDir)
	if err != nil {
		fatal("failed to open data dir: %v", err)
	}
	words, err := catalog.Load()
	if err != nil {
		fatal("failed to load word catalog: %v", err)
	}

	engine := progress.New(store)
	ctx := logger.NewContext(context.Background(), log)

	if err := ensureProgress(ctx, engine); err != nil {
		fatal("failed to initialize progress: %v", err)
	}

	switch cmd := flag.Arg(0); cmd {
	case "study":
		err = runStudy(ctx, engine, words, flag.Args()[1:])
	case "due":
		err = runDue(ctx, engine, words)
	case "stats":
		err = runStats(ctx, engine)
	case "goal":
		err = runGoal(ctx, engine, flag.Args()[1:])
	case "reset":
		err = engine.Reset(ctx)
		if err == nil {
			fmt.Println("학습 데이터가 초기화되었습니다.")
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fatal("%v", err)
	}
}

// ensureProgress seeds the default progress row on first run. The server
// does this at registration; locally the first invocation takes that role.
func ensureProgress(ctx context.Context, engine *progress.Engine) error {
	prog, err := engine.Progress(ctx)
	if err != nil {
		return err
	}
	if prog != nil {
		return nil
	}
	return engine.Reset(ctx)
}

func runStudy(ctx context.Context, engine *progress.Engine, words *catalog.Catalog, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("study needs a word id and correct|wrong")
	}
	wordID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid word id %q", args[0])
	}
	var correct bool
	switch args[1] {
	case "correct":
		correct = true
	case "wrong":
		correct = false
	default:
		return fmt.Errorf("answer must be correct or wrong, got %q", args[1])
	}

	outcome, err := engine.RecordAnswer(ctx, wordID, correct)
	if err != nil {
		return err
	}

	if w, ok := words.ByID(wordID); ok {
		fmt.Printf("%s %s (%s)\n", w.Emoji, w.Korean, w.English)
	}
	if correct {
		fmt.Printf("정답! +%d XP, 박스 %d (다음 복습: %s)\n", outcome.XPGained, outcome.NewBox, outcome.Record.NextReview)
	} else {
		fmt.Printf("오답 +%d XP, 박스 %d로 이동\n", outcome.XPGained, outcome.NewBox)
	}
	if outcome.LevelUp != nil {
		fmt.Printf("레벨 업! 레벨 %d 달성 🎉\n", *outcome.LevelUp)
	}
	for _, a := range outcome.Unlocked {
		fmt.Printf("업적 달성: %s %s - %s\n", a.Emoji, a.Title, a.Description)
	}
	return nil
}

func runDue(ctx context.Context, engine *progress.Engine, words *catalog.Catalog) error {
	prog, err := engine.Progress(ctx)
	if err != nil {
		return err
	}
	pool := words.ForLevels(prog.UnlockedLevels)

	due, err := engine.DueWords(ctx, pool)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		fmt.Println("오늘 복습할 단어가 없습니다!")
		return nil
	}
	fmt.Printf("오늘 복습할 단어 %d개:\n", len(due))
	for _, w := range due {
		fmt.Printf("  %4d  %s %s (%s)\n", w.ID, w.Emoji, w.Korean, w.English)
	}
	return nil
}

func runStats(ctx context.Context, engine *progress.Engine) error {
	prog, err := engine.Progress(ctx)
	if err != nil {
		return err
	}
	stats, err := engine.Stats(ctx)
	if err != nil {
		return err
	}

	xp := progression.XPProgress(*prog)
	daily := progression.DailyProgress(*prog)
	fmt.Printf("레벨 %d (XP %d/%d, 총 %d)\n", prog.Level, xp.Current, xp.Needed, xp.TotalXP)
	fmt.Printf("연속 학습: %d일 (최고 %d일)\n", prog.CurrentStreak, prog.LongestStreak)
	fmt.Printf("오늘 학습: %d / %d (%.0f%%)\n", daily.Current, daily.Goal, daily.Percentage)
	fmt.Println()
	for box := 1; box <= 5; box++ {
		fmt.Printf("박스 %d: %d개\n", box, stats.Boxes[box])
	}
	fmt.Printf("마스터한 단어: %d개\n", stats.MasteredCount)
	return nil
}

func runGoal(ctx context.Context, engine *progress.Engine, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("goal needs a number")
	}
	goal, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid goal %q", args[0])
	}
	if err := engine.SetDailyGoal(ctx, goal); err != nil {
		return err
	}
	fmt.Printf("하루 목표가 %d개로 설정되었습니다.\n", goal)
	return nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "vocab: "+format+"\n", args...)
	os.Exit(1)
}
