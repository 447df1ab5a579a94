package menu

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/yourusername/menucli/internal/logging"
)

// Facade error vocabulary. The platform layer wraps its raw failures so
// the walker can partition them without importing it.
var (
	// ErrUnsupported: the requested attribute (typically the extras bar)
	// is not present on the element.
	ErrUnsupported = errors.New("attribute unsupported")
	// ErrInvalidElement: the element handle went stale (app quit, menu
	// mutated). The node is skipped.
	ErrInvalidElement = errors.New("invalid element")
	// ErrCannotComplete: transient AX failure; retried once.
	ErrCannotComplete = errors.New("cannot complete")
	// ErrNotAuthorized: accessibility permission missing. Fatal.
	ErrNotAuthorized = errors.New("not authorized")
)

// BarKind selects which of an app's two menu bars to walk.
type BarKind int

const (
	Standard BarKind = iota
	Extras
)

// BuildOptions configure a tree build.
type BuildOptions struct {
	// MaxDepth bounds menu-item nesting: 0 returns only the root,
	// 1 returns top-level items without submenus, and so on.
	// Negative means unlimited. The AXMenu wrapper elements do not count.
	MaxDepth int
	// IncludeAlternates keeps Option-key alternate items in the tree.
	// Alternates are always detected; this only controls filtering.
	IncludeAlternates bool
	Kind              BarKind
}

// BuildResult is a built tree plus walk diagnostics.
type BuildResult struct {
	Root MenuNode
	// Partial is set when the walk deadline expired before every branch
	// was descended. The tree holds everything walked so far.
	Partial bool
}

// App identifies a running application for cross-app extras listings.
type App struct {
	Name string
	PID  int
}

// ExtrasTree associates one app's extras tree with its owner.
type ExtrasTree struct {
	App  App
	Tree BuildResult
}

type builder struct {
	src     Source
	opts    BuildOptions
	partial atomic.Bool
}

// BuildTree walks the menu graph rooted at the standard or extras menu
// bar of pid. Top-level bar children are walked concurrently, one worker
// each; the workers share nothing and the root's children are reassembled
// in the original enumeration order, so identical AX state yields
// byte-equal trees. A ctx deadline stops new descent; the partially built
// tree is returned with Partial set.
func BuildTree(ctx context.Context, src Source, pid int, opts BuildOptions) (*BuildResult, error) {
	b := &builder{src: src, opts: opts}

	var root Element
	var err error
	if opts.Kind == Extras {
		root, err = src.ExtrasMenuBar(pid)
	} else {
		root, err = src.MenuBar(pid)
	}
	if err != nil {
		return nil, err
	}

	attrs, err := b.fetch(root)
	if err != nil {
		return nil, err
	}

	node := MenuNode{Title: attrs.Title, Role: attrs.Role}
	if node.Role == "" {
		if opts.Kind == Extras {
			node.Role = RoleExtrasMenuBar
		} else {
			node.Role = RoleMenuBar
		}
	}

	top := b.barChildren(root, attrs)
	if opts.MaxDepth == 0 || len(top) == 0 {
		return &BuildResult{Root: node, Partial: b.partial.Load()}, nil
	}

	// One worker per top-level bar child. Workers never fail the group;
	// each writes only its own slot.
	results := make([]*MenuNode, len(top))
	g, gctx := errgroup.WithContext(ctx)
	for i, el := range top {
		i, el := i, el
		g.Go(func() error {
			if n := b.walkTop(gctx, el); n != nil {
				results[i] = n
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, n := range results {
		if n == nil || (n.IsAlternate && !opts.IncludeAlternates) {
			continue
		}
		node.Children = append(node.Children, *n)
	}
	return &BuildResult{Root: node, Partial: b.partial.Load()}, nil
}

// BuildAllExtras builds extras trees for every supplied app concurrently.
// Apps whose extras bar is unsupported, or that fail outright, are
// skipped. Result order follows the input app order.
func BuildAllExtras(ctx context.Context, src Source, apps []App, opts BuildOptions) []ExtrasTree {
	opts.Kind = Extras
	results := make([]*ExtrasTree, len(apps))

	g, gctx := errgroup.WithContext(ctx)
	for i, app := range apps {
		i, app := i, app
		g.Go(func() error {
			res, err := BuildTree(gctx, src, app.PID, opts)
			if err != nil {
				if !errors.Is(err, ErrUnsupported) {
					logging.Debug().Err(err).Str("app", app.Name).Int("pid", app.PID).
						Msg("skipping app extras")
				}
				return nil
			}
			if len(res.Root.Children) == 0 {
				return nil
			}
			results[i] = &ExtrasTree{App: app, Tree: *res}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]ExtrasTree, 0, len(apps))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

// walkTop builds the subtree under one top-level bar child.
func (b *builder) walkTop(ctx context.Context, el Element) *MenuNode {
	attrs, err := b.fetch(el)
	if err != nil {
		if errors.Is(err, ErrInvalidElement) {
			return nil
		}
		n := b.placeholder(attrs)
		return &n
	}
	cache := map[Element]string{}
	n := b.item(ctx, el, attrs, 1, cache, nil)
	return &n
}

// item builds a MenuNode at the given menu-item depth from already
// fetched attributes.
func (b *builder) item(ctx context.Context, el Element, attrs ItemAttrs, depth int, altCache map[Element]string, lastPrimary *string) MenuNode {
	n := MenuNode{
		Title:   attrs.Title,
		Role:    attrs.Role,
		Enabled: attrs.Enabled,
		Checked: CheckStateFromMark(attrs.MarkChar),
	}

	if n.Role == RoleSeparator {
		n.Enabled = false
		n.Checked = Unchecked
		return n
	}

	n.Shortcut = FormatShortcut(attrs.ShortcutKey, attrs.ShortcutMods)

	if attrs.Primary != nil {
		n.IsAlternate = true
		n.AlternateOf = b.primaryTitle(attrs.Primary, altCache)
		if n.AlternateOf == "" && lastPrimary != nil {
			n.AlternateOf = *lastPrimary
		}
	}

	if b.opts.MaxDepth < 0 || depth < b.opts.MaxDepth {
		n.Children = b.children(ctx, el, attrs, depth+1)
	}
	return n
}

// children enumerates and builds the item nodes below a menu item,
// recursing transparently through AXMenu wrapper elements (which do not
// count toward depth and produce no node).
func (b *builder) children(ctx context.Context, parent Element, parentAttrs ItemAttrs, depth int) []MenuNode {
	elems := b.childElements(parent, parentAttrs)
	if len(elems) == 0 {
		return nil
	}

	nodes := make([]MenuNode, 0, len(elems))
	altCache := map[Element]string{}
	var lastPrimary string

	for _, el := range elems {
		if ctx.Err() != nil {
			// Deadline: finish nothing new; keep what we have.
			b.partial.Store(true)
			break
		}
		attrs, err := b.fetch(el)
		if err != nil {
			if errors.Is(err, ErrInvalidElement) {
				continue
			}
			logging.Warn().Err(err).Str("parent", parentAttrs.Title).
				Msg("element fetch failed; emitting placeholder")
			nodes = append(nodes, b.placeholder(attrs))
			continue
		}

		if attrs.Role == RoleMenu {
			// Transparent container: splice its children in at this depth.
			nodes = append(nodes, b.children(ctx, el, attrs, depth)...)
			lastPrimary = ""
			continue
		}

		n := b.item(ctx, el, attrs, depth, altCache, &lastPrimary)
		if n.IsAlternate {
			if b.opts.IncludeAlternates {
				nodes = append(nodes, n)
			}
			continue
		}
		if n.Role != RoleSeparator && n.Title != "" {
			lastPrimary = n.Title
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// childElements picks the enumeration source for descent: visible
// children for extras bars (so items hidden by menu-bar managers are not
// walked), the batched children slot otherwise.
func (b *builder) childElements(el Element, attrs ItemAttrs) []Element {
	if b.opts.Kind == Extras {
		if visible, err := el.VisibleChildren(); err == nil {
			return visible
		}
	}
	return attrs.Children
}

// barChildren is childElements for the root bar element.
func (b *builder) barChildren(root Element, attrs ItemAttrs) []Element {
	return b.childElements(root, attrs)
}

// fetch performs the batched attribute read, retrying a transient
// CannotComplete once.
func (b *builder) fetch(el Element) (ItemAttrs, error) {
	attrs, err := el.Fetch()
	if err != nil && errors.Is(err, ErrCannotComplete) {
		attrs, err = el.Fetch()
	}
	return attrs, err
}

// primaryTitle resolves the alternate back-reference to a title with one
// targeted fetch, cached per siblings scope so duplicate back-references
// cost one IPC.
func (b *builder) primaryTitle(primary Element, cache map[Element]string) string {
	if title, ok := cache[primary]; ok {
		return title
	}
	title := ""
	if attrs, err := primary.Fetch(); err == nil {
		title = attrs.Title
	}
	cache[primary] = title
	return title
}

// placeholder builds a node from whatever attributes a failed fetch
// returned. Its state is reported as unknown rather than invented.
func (b *builder) placeholder(attrs ItemAttrs) MenuNode {
	return MenuNode{
		Title:   attrs.Title,
		Role:    attrs.Role,
		Enabled: false,
		Checked: Unknown,
	}
}
