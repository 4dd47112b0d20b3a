package cli

import (
	"bufio"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/c-bata/go-prompt"
	"github.com/mattn/go-isatty"
)

type Executor func(line string)
type Completer func(d prompt.Document) []prompt.Suggest

// MainLoop feeds lines to exec until input ends or done() reports true.
// Terminal gets interactive prompt with completion, pipe is read line by line.
func MainLoop(tag string, exec Executor, complete Completer, done func() bool) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	go func() {
		for range signalCh {
			os.Exit(1)
		}
	}()
	defer signal.Stop(signalCh)

	if isatty.IsTerminal(os.Stdin.Fd()) {
		p := prompt.New(prompt.Executor(exec), prompt.Completer(complete),
			prompt.OptionPrefix(tag+"> "),
			prompt.OptionTitle(tag),
			prompt.OptionSetExitCheckerOnInput(func(string, bool) bool { return done() }),
		)
		p.Run()
		return
	}
	if err := ReadLines(os.Stdin, exec, done); err != nil {
		log.Fatal(err)
	}
}

// ReadLines is non-interactive part of MainLoop.
func ReadLines(r io.Reader, exec Executor, done func() bool) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() && !done() {
		exec(strings.TrimSpace(scanner.Text()))
	}
	return scanner.Err()
}

func FilterFuzzy(suggests []prompt.Suggest, d prompt.Document) []prompt.Suggest {
	return prompt.FilterFuzzy(suggests, d.GetWordBeforeCursor(), true)
}
