package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/msto63/gwent/internal/core/config"
	gwerror "github.com/msto63/gwent/internal/core/error"
	gwlog "github.com/msto63/gwent/internal/core/log"
	"github.com/msto63/gwent/internal/lang/eval"
	"github.com/msto63/gwent/internal/lang/token"
)

func quiet() Options {
	return Options{Logger: gwlog.Discard()}
}

func TestRunSuccess(t *testing.T) {
	res := Run(context.Background(), "int x = 1 + 2 * 3;\nConsole.WriteLine(x);", quiet())

	if res.Failed() {
		t.Fatalf("Expected success, got %v", res.Diagnostics)
	}
	if res.Output != "7\n" {
		t.Errorf("Expected output 7, got %q", res.Output)
	}
	if len(res.Nodes) != 2 {
		t.Errorf("Expected 2 statements, got %d", len(res.Nodes))
	}
	if res.Tokens[len(res.Tokens)-1].Kind != token.EOF {
		t.Error("Expected tokens to end with EOF")
	}
	if _, err := uuid.Parse(res.RunID); err != nil {
		t.Errorf("Expected a uuid run ID, got %q", res.RunID)
	}
	if res.Err() != nil {
		t.Errorf("Expected nil Err, got %v", res.Err())
	}
}

func TestRunStages(t *testing.T) {
	tests := []struct {
		name   string
		source string
		stage  gwerror.Stage
		code   gwerror.Code
		count  int
	}{
		{"lex error", "int x = 1 @ 2;", gwerror.StageLex, gwerror.CodeLexIllegalCharacter, 1},
		{"parse errors accumulate", "1 = 2;\nint = 3;", gwerror.StageParse, gwerror.CodeParseInvalidTarget, 2},
		{"eval error", "int x = 1 / 0;", gwerror.StageEval, gwerror.CodeEvalDivisionByZero, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Run(context.Background(), tt.source, quiet())
			if len(res.Diagnostics) != tt.count {
				t.Fatalf("Expected %d diagnostics, got %d: %v", tt.count, len(res.Diagnostics), res.Diagnostics)
			}
			d := res.Diagnostics[0]
			if d.Stage != tt.stage {
				t.Errorf("Expected stage %v, got %v", tt.stage, d.Stage)
			}
			if d.Code != tt.code {
				t.Errorf("Expected code %s, got %s", tt.code, d.Code)
			}
			if d.Line == 0 {
				t.Error("Expected a source position")
			}
		})
	}
}

func TestParseErrorsSkipEvaluation(t *testing.T) {
	res := Run(context.Background(), "Console.WriteLine(1);\n1 = 2;", quiet())
	if res.Output != "" {
		t.Errorf("Expected no evaluation after parse errors, got %q", res.Output)
	}
	d := res.Diagnostics[0]
	if d.Token == nil || d.Token.Lexeme != "=" {
		t.Errorf("Expected offending token '=', got %+v", d.Token)
	}
	if !strings.HasPrefix(d.String(), "[Parse] 2:3 PARSE_INVALID_ASSIGNMENT_TARGET") {
		t.Errorf("Unexpected diagnostic text %q", d.String())
	}
}

func TestStopAfter(t *testing.T) {
	opts := quiet()
	opts.StopAfter = gwerror.StageLex
	res := Run(context.Background(), "1 = 2;", opts)
	if res.Failed() || res.Nodes != nil {
		t.Errorf("Expected lexing only, got %v", res.Diagnostics)
	}

	opts.StopAfter = gwerror.StageParse
	res = Run(context.Background(), "Console.WriteLine(1);", opts)
	if res.Output != "" || len(res.Nodes) != 1 {
		t.Errorf("Expected parsing only, got output %q", res.Output)
	}
}

func TestOutputTee(t *testing.T) {
	var out bytes.Buffer
	opts := quiet()
	opts.Output = &out

	res := Run(context.Background(), "Console.WriteLine(\"hi\");", opts)
	if out.String() != "hi\n" || res.Output != "hi\n" {
		t.Errorf("Expected output in both places, got %q and %q", out.String(), res.Output)
	}
}

func TestTimeout(t *testing.T) {
	opts := quiet()
	opts.Timeout = 20 * time.Millisecond

	res := Run(context.Background(), "while (true) { }", opts)
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != gwerror.CodeEvalCancelled {
		t.Fatalf("Expected cancellation diagnostic, got %v", res.Diagnostics)
	}
}

func TestSharedEvaluator(t *testing.T) {
	var out bytes.Buffer
	opts := quiet()
	opts.Evaluator = eval.New(eval.Options{Logger: gwlog.Discard(), Output: &out})

	if res := Run(context.Background(), "int a = 2;", opts); res.Failed() {
		t.Fatalf("First run failed: %v", res.Diagnostics)
	}
	res := Run(context.Background(), "a * 21;", opts)
	if res.Failed() {
		t.Fatalf("Second run failed: %v", res.Diagnostics)
	}
	if res.Value.AsInt() != 42 {
		t.Errorf("Expected value 42, got %s", res.Value)
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Parser.MaxDepth = 12
	cfg.Eval.Timeout.Duration = time.Second

	opts := FromConfig(cfg, gwlog.Discard())
	if opts.ParserMaxDepth != 12 || opts.Timeout != time.Second {
		t.Errorf("Expected config values to carry over, got %+v", opts)
	}
}
