package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/paulmoore/classkit/classes"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "repl":
		return replCommand(args[2:])
	case "demo":
		return demoCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func replCommand(args []string) error {
	cfg, err := parseEngineConfig("repl", args)
	if err != nil {
		return err
	}
	return runREPL(cfg)
}

func demoCommand(args []string) error {
	cfg, err := parseEngineConfig("demo", args)
	if err != nil {
		return err
	}
	engine, err := newMenagerie(cfg)
	if err != nil {
		return err
	}
	return runDemo(engine, os.Stdout)
}

func parseEngineConfig(command string, args []string) (classes.Config, error) {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	configPath := fs.String("config", "", "path to a YAML file with engine limits")
	if err := fs.Parse(args); err != nil {
		return classes.Config{}, err
	}
	if len(fs.Args()) > 0 {
		return classes.Config{}, fmt.Errorf("classkit %s: unexpected argument %q", command, fs.Args()[0])
	}
	return loadConfig(*configPath)
}

// runDemo walks the sample hierarchy end to end and prints each step.
func runDemo(engine *classes.Engine, out io.Writer) error {
	ctx := context.Background()

	cat, _ := engine.Class("Cat")
	dog, _ := engine.Class("Dog")
	animal, _ := engine.Class("Animal")

	myCat, err := engine.New(ctx, cat, []classes.Value{classes.NewString("mio"), classes.NewString("tabby")}, classes.CallOptions{})
	if err != nil {
		return err
	}
	rex, err := engine.New(ctx, dog, []classes.Value{classes.NewString("rex")}, classes.CallOptions{})
	if err != nil {
		return err
	}

	for _, pet := range []classes.Value{myCat, rex} {
		name, err := engine.Call(ctx, pet, "name", nil, classes.CallOptions{})
		if err != nil {
			return err
		}
		sound, err := engine.Call(ctx, pet, "speak", nil, classes.CallOptions{})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s the %s says %s\n", name.String(), pet.ClassOf().Name, sound.String())
	}

	kingdom, err := engine.CallClass(ctx, cat, "kingdom", nil, classes.CallOptions{})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Cat.kingdom = %s\n", kingdom.String())

	isAnimal, err := classes.InstanceOf(myCat, animal)
	if err != nil {
		return err
	}
	isDog, err := classes.InstanceOf(myCat, dog)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "instanceOf(myCat, Animal) = %t\n", isAnimal)
	fmt.Fprintf(out, "instanceOf(myCat, Dog) = %t\n", isDog)
	return nil
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <repl|demo> [flags]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  repl")
	fmt.Fprintln(os.Stderr, "    interactive class workbench (requires a terminal)")
	fmt.Fprintln(os.Stderr, "  demo")
	fmt.Fprintln(os.Stderr, "    run the sample hierarchy end to end and print each step")
	fmt.Fprintln(os.Stderr, "Flags:")
	fmt.Fprintln(os.Stderr, "  -config <file>")
	fmt.Fprintln(os.Stderr, "    YAML file with engine limits (step_quota, recursion_limit)")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
