// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command sable is the REPL driver for the evaluation core in the root
// package: one phrase at a time (continued over further lines while the
// parser reports an unexpected EOF), fed through internal/syntax and Obey.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	sable "github.com/sable-lang/sable"
	"github.com/sable-lang/sable/internal/syntax"
)

var log = logrus.New()

func main() {
	_ = godotenv.Load(".env")

	homeDir, _ := os.UserHomeDir()
	cacheDir := filepath.Join(homeDir, ".cache", "sable")
	_ = os.MkdirAll(cacheDir, 0755)

	if f, err := os.OpenFile(filepath.Join(cacheDir, "debug.log"),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err == nil {
		log.SetOutput(f)
		defer f.Close()
	}
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	sessionID := uuid.New().String()
	log.WithField("session", sessionID).Info("sable session starting")

	if src, ok := parseEvalFlag(os.Args[1:]); ok {
		runOneShot(src)
		return
	}

	runREPL(cacheDir)
}

// parseEvalFlag recognizes "-c SRC"/"--eval SRC" (or "-c=SRC"/"--eval=SRC")
// for a one-shot phrase, so a single invocation can be scripted without a
// terminal attached.
func parseEvalFlag(args []string) (string, bool) {
	for i, a := range args {
		switch {
		case a == "-c" || a == "--eval":
			if i+1 < len(args) {
				return args[i+1], true
			}
			return "", false
		case strings.HasPrefix(a, "-c="):
			return strings.TrimPrefix(a, "-c="), true
		case strings.HasPrefix(a, "--eval="):
			return strings.TrimPrefix(a, "--eval="), true
		}
	}
	return "", false
}

func runOneShot(src string) {
	state := sable.NewProgState()
	phrase, err := syntax.ParsePhrase(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
		os.Exit(1)
	}
	display, _, err := sable.Obey(phrase, state)
	if err != nil {
		log.WithError(err).Error("phrase failed")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(display)
}

func runREPL(cacheDir string) {
	fmt.Println("\033[1m\033[36msable\033[0m — a little concurrent calculator " +
		"\033[2m(exit/Ctrl-D to quit)\033[0m")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[36m>\033[0m ",
		HistoryFile:     filepath.Join(cacheDir, "history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline init error: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	state := sable.NewProgState()
	var pending strings.Builder

	for {
		prompt := "\033[36m>\033[0m "
		if pending.Len() > 0 {
			prompt = "\033[36m.\033[0m "
		}
		rl.SetPrompt(prompt)

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			pending.Reset()
			continue
		}
		if err != nil {
			break
		}

		if pending.Len() > 0 {
			pending.WriteByte('\n')
		}
		pending.WriteString(line)

		src := pending.String()
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			pending.Reset()
			continue
		}
		if pending.Len() == len(trimmed) && (trimmed == "exit" || trimmed == "quit") {
			break
		}

		phrase, err := syntax.ParsePhrase(src)
		if err != nil {
			if _, unterminated := err.(syntax.ErrUnexpectedEOF); unterminated {
				continue // keep accumulating lines into pending
			}
			fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
			pending.Reset()
			continue
		}
		pending.Reset()

		display, next, err := sable.Obey(phrase, state)
		if err != nil {
			log.WithError(err).Warn("phrase aborted")
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		state = next
		fmt.Println(display)
	}
}
