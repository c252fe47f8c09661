// Package lsp is a language server that reports parse errors as
// diagnostics. JSON documents are checked with the json grammar; other
// documents with a compiled EBNF grammar, when one is configured.
package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/comb/diag"
	"github.com/dhamidi/comb/ebnfparse"
	"github.com/dhamidi/comb/json"
)

const lsName = "comb"

var log = commonlog.GetLogger("comb.lsp")

// Checker reports the parse error of a document, or nil.
type Checker interface {
	Check(src string) error
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(src string) error

func (f CheckerFunc) Check(src string) error {
	return f(src)
}

// JSONChecker checks documents as JSON.
var JSONChecker = CheckerFunc(func(src string) error {
	return json.Check([]byte(src))
})

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string
	grammar Checker

	mu   sync.Mutex
	docs map[string]string
}

// NewServer creates a server. grammar checks every document that is not
// JSON; it may be nil.
func NewServer(version string, grammar *ebnfparse.Compiled) *Server {
	ls := &Server{
		version: version,
		docs:    make(map[string]string),
	}
	if grammar != nil {
		ls.grammar = grammar
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("client initialized")
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.update(ctx, params.TextDocument.URI, textChange.Text)
		}
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mu.Lock()
	delete(ls.docs, params.TextDocument.URI)
	ls.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(ctx, params.TextDocument.URI, *params.Text)
		return nil
	}
	ls.mu.Lock()
	text, ok := ls.docs[params.TextDocument.URI]
	ls.mu.Unlock()
	if ok {
		ls.update(ctx, params.TextDocument.URI, text)
	}
	return nil
}

func (ls *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	ls.mu.Lock()
	ls.docs[uri] = text
	ls.mu.Unlock()

	checker := ls.checkerFor(uri)
	if checker == nil {
		return
	}
	diagnostics := Diagnostics(text, checker.Check(text))
	log.Debugf("%s: %d diagnostics", uri, len(diagnostics))
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func (ls *Server) checkerFor(uri string) Checker {
	path, err := uriToPath(uri)
	if err != nil {
		return nil
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSONChecker
	}
	return ls.grammar
}

// Diagnostics converts the result of checking src into LSP diagnostics. A
// nil err yields an empty list.
func Diagnostics(src string, err error) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if err == nil {
		return diagnostics
	}

	severity := protocol.DiagnosticSeverityError
	source := lsName
	d, ok := diag.FromError("", src, err)
	if !ok {
		return append(diagnostics, protocol.Diagnostic{
			Severity: &severity,
			Source:   &source,
			Message:  err.Error(),
		})
	}

	start := protocol.Position{
		Line:      protocol.UInteger(d.Pos.Line - 1),
		Character: protocol.UInteger(utf16Len(src[d.Pos.LineStart:d.Pos.Offset])),
	}
	end := start
	if d.Pos.Offset < len(src) && src[d.Pos.Offset] != '\n' {
		end.Character++
	}
	return append(diagnostics, protocol.Diagnostic{
		Range:    protocol.Range{Start: start, End: end},
		Severity: &severity,
		Source:   &source,
		Message:  d.Message,
	})
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
