package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/archguard/archguard/internal/archguard/config"
	"github.com/archguard/archguard/internal/archguard/policy"
	"github.com/archguard/archguard/internal/archguard/store"
	"github.com/archguard/archguard/internal/archguard/validate"
	"github.com/archguard/archguard/internal/archguard/watcher"
)

const serverVersion = "0.1.0"

// ArchguardServer implements the MCP surface of the validator. It wires the
// Aggregator, policy cache, run-history store, and policy-file watcher, and
// exposes them as tools and resources. Requests are stateless: the policy
// cache is the only shared state, and it is snapshot-consistent.
type ArchguardServer struct {
	Validator *validate.Validator
	Policies  *policy.Cache
	Store     *store.Store
	Config    *config.Config
	Watcher   *watcher.Watcher
	RootDir   string

	logger hclog.Logger
}

// NewServer initializes the archguard MCP server rooted at rootDir. It loads
// configuration, opens the run-history store, and starts the policy-file
// watcher; store and watcher failures degrade with a warning since the
// validator works without either.
func NewServer(rootDir string, logger hclog.Logger) (*mcp.Server, *ArchguardServer, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.LoadConfig(absRoot)
	if err != nil {
		logger.Warn("failed to load config, using defaults", "error", err)
		c := config.DefaultConfig
		cfg = &c
	}

	policies := policy.NewCache(logger)
	validator := validate.New(cfg, policies, logger)

	st, err := store.NewStore(filepath.Join(absRoot, cfg.PersistenceDir))
	if err != nil {
		logger.Warn("failed to open run-history store, history disabled", "error", err)
		st = nil
	}

	w, err := watcher.NewWatcher(absRoot, cfg.PolicyFile, policies, logger)
	if err != nil {
		logger.Warn("failed to start policy watcher, cache relies on mtime checks", "error", err)
	} else {
		w.Start()
	}

	as := &ArchguardServer{
		Validator: validator,
		Policies:  policies,
		Store:     st,
		Config:    cfg,
		Watcher:   w,
		RootDir:   absRoot,
		logger:    logger.Named("mcp"),
	}

	s := mcp.NewServer(&mcp.Implementation{
		Name:    "archguard-mcp",
		Version: serverVersion,
	}, &mcp.ServerOptions{})

	// Register Tools
	mcp.AddTool(s, &mcp.Tool{
		Name:        "architecture_check",
		Description: "Validate Server/Client component boundaries, data fetching, and security rules across a directory",
	}, as.architectureCheck)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "check_component_architecture",
		Description: "Validate the architecture rules for a single component file",
	}, as.checkComponentArchitecture)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "dependency_check",
		Description: "Check the project manifest against the dependency allow/deny policy",
	}, as.dependencyCheck)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "check_import_allowed",
		Description: "Check whether a single package import is admissible under the dependency policy",
	}, as.checkImportAllowed)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "style_check",
		Description: "Validate naming conventions, unused variables, and file-size limits across a directory",
	}, as.styleCheck)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "check_file_style",
		Description: "Validate the style rules for a single file",
	}, as.checkFileStyle)

	// Register Resources
	s.AddResource(&mcp.Resource{
		Name: "status",
		URI:  "mcp://archguard/status",
	}, as.handleStatus)

	s.AddResource(&mcp.Resource{
		Name: "policy",
		URI:  "mcp://archguard/policy",
	}, as.handlePolicy)

	s.AddResource(&mcp.Resource{
		Name: "history",
		URI:  "mcp://archguard/history",
	}, as.handleHistory)

	return s, as, nil
}

// Close releases the watcher and store.
func (as *ArchguardServer) Close() error {
	if as.Watcher != nil {
		as.Watcher.Close()
	}
	if as.Store != nil {
		return as.Store.Close()
	}
	return nil
}

// Resource Handlers

func (as *ArchguardServer) handleStatus(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	status := map[string]interface{}{
		"status":          "healthy",
		"version":         serverVersion,
		"root":            as.RootDir,
		"policy_file":     as.Config.PolicyFile,
		"history_enabled": as.Store != nil,
	}
	bytes, _ := json.MarshalIndent(status, "", "  ")
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: req.Params.URI, MIMEType: "application/json", Text: string(bytes)},
		},
	}, nil
}

func (as *ArchguardServer) handlePolicy(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	doc, err := as.Policies.Get(as.RootDir, as.Config.PolicyFile)
	payload := map[string]interface{}{
		"allow": doc.Allow,
		"deny":  doc.Deny,
	}
	if err != nil {
		payload["warning"] = fmt.Sprintf("policy unavailable: %v", err)
	}
	bytes, _ := json.MarshalIndent(payload, "", "  ")
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: req.Params.URI, MIMEType: "application/json", Text: string(bytes)},
		},
	}, nil
}

func (as *ArchguardServer) handleHistory(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	if as.Store == nil {
		return nil, fmt.Errorf("run history is disabled")
	}
	runs, err := as.Store.RecentRuns(20)
	if err != nil {
		return nil, err
	}
	bytes, _ := json.MarshalIndent(runs, "", "  ")
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: req.Params.URI, MIMEType: "application/json", Text: string(bytes)},
		},
	}, nil
}
