// Copyright 2026 © The Praxis Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/praxislabs/praxis/pkg/agent"
	"github.com/praxislabs/praxis/pkg/llm"
	"github.com/praxislabs/praxis/pkg/memory"
	"github.com/praxislabs/praxis/pkg/retrieval"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (a *app) runAsk(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("ask", flag.ContinueOnError)
	kb := fs.String("kb", "", "knowledge base to ground the answer in")
	if err := fs.Parse(args); err != nil {
		return err
	}
	question := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if question == "" {
		return fmt.Errorf("ask: a question is required")
	}

	engine, err := a.newEngine()
	if err != nil {
		return err
	}

	if *kb != "" {
		conv, err := agent.NewConversationalEngine(engine, a.retrievalProvider())
		if err != nil {
			return err
		}
		res := conv.Run(ctx, question, agent.RunOptions{
			EnableRAG: true,
			RAGStore:  *kb,
			TopK:      a.cfg.Retrieval.TopK,
		})
		return a.printConversationResult(res)
	}

	res := engine.Run(ctx, question)
	return a.printResult(res)
}

func (a *app) runChat(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("chat", flag.ContinueOnError)
	sessionID := fs.String("session", "", "session id to resume")
	kb := fs.String("kb", "", "knowledge base to ground answers in")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, closeStore, err := a.newConversationStore()
	if err != nil {
		return err
	}
	defer closeStore()

	session, err := openSession(ctx, store, *sessionID)
	if err != nil {
		return err
	}
	fmt.Printf("session %s — type a message, or /quit to exit\n", session.ID)

	engine, err := a.newEngine()
	if err != nil {
		return err
	}
	conv, err := agent.NewConversationalEngine(engine, a.retrievalProvider())
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "/quit" || input == "/exit" {
			break
		}

		history, err := loadHistory(ctx, store, session.ID, 20)
		if err != nil {
			return err
		}

		res := conv.Run(ctx, input, agent.RunOptions{
			History:   history,
			EnableRAG: *kb != "",
			RAGStore:  *kb,
			TopK:      a.cfg.Retrieval.TopK,
		})
		if err := a.printConversationResult(res); err != nil {
			return err
		}

		for _, m := range res.NewMessages {
			err := store.AppendMessage(ctx, session.ID, memory.ConversationMessage{
				Role:    string(m.Role),
				Content: m.Content,
			})
			if err != nil {
				return err
			}
		}
	}
	return scanner.Err()
}

func (a *app) runIngest(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("ingest", flag.ContinueOnError)
	kb := fs.String("kb", "", "knowledge base to ingest into")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *kb == "" {
		return fmt.Errorf("ingest: --kb is required")
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("ingest: at least one file is required")
	}
	if a.retriever == nil {
		return fmt.Errorf("ingest: retrieval backend is not available")
	}

	if err := a.retriever.CreateStore(ctx, *kb); err != nil {
		return err
	}
	for _, path := range fs.Args() {
		text, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		chunks, err := a.retriever.Ingest(ctx, *kb, retrieval.Document{
			Name: filepath.Base(path),
			Text: string(text),
		})
		if err != nil {
			return err
		}
		fmt.Printf("ingested %s: %d chunks\n", path, chunks)
	}
	return nil
}

func (a *app) runTools(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("tools: unexpected arguments %v", args)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCATEGORY\tDESCRIPTION")
	for _, t := range a.registry.List("") {
		d := t.Describe()
		fmt.Fprintf(w, "%s\t%s\t%s\n", d.Name, d.Category, truncate(d.Description, 72))
	}
	return w.Flush()
}

func openSession(ctx context.Context, store memory.ConversationStore, id string) (*memory.Session, error) {
	if id != "" {
		if s, err := store.GetSession(ctx, id); err == nil {
			return s, nil
		}
		return store.CreateSession(ctx, id, "chat "+id)
	}
	id = uuid.NewString()
	return store.CreateSession(ctx, id, "chat "+id[:8])
}

func loadHistory(ctx context.Context, store memory.ConversationStore, sessionID string, limit int) ([]llm.Message, error) {
	stored, err := store.GetRecentMessages(ctx, sessionID, limit)
	if err != nil {
		return nil, err
	}
	history := make([]llm.Message, 0, len(stored))
	for _, m := range stored {
		history = append(history, llm.Message{
			Role:    llm.Role(m.Role),
			Content: m.Content,
		})
	}
	return history, nil
}

func (a *app) printResult(res *agent.Result) error {
	if a.global.JSON {
		return printJSON(res)
	}
	fmt.Println(res.Answer)
	if res.Error != "" {
		fmt.Fprintln(os.Stderr, "error:", res.Error)
	}
	if a.global.Verbose {
		printSteps(res.Steps)
	}
	return nil
}

func (a *app) printConversationResult(res *agent.ConversationResult) error {
	if a.global.JSON {
		return printJSON(res)
	}
	fmt.Println(res.Answer)
	if res.Error != "" {
		fmt.Fprintln(os.Stderr, "error:", res.Error)
	}
	if res.RAGUsed && len(res.Sources) > 0 {
		fmt.Printf("(%d sources from %s)\n", len(res.Sources), res.RAGStore)
	}
	if a.global.Verbose {
		printSteps(res.Steps)
	}
	return nil
}

func printSteps(steps []agent.Step) {
	for _, s := range steps {
		fmt.Fprintf(os.Stderr, "  [%d] %s -> %s\n", s.Iteration, s.Tool, truncate(s.Observation, 120))
	}
}

func printJSON(value any) error {
	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}
