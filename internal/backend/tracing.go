package backend

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/rungrid/rungrid/internal/tracing"
)

// WithTracing wraps c so every command runs in its own span.
func WithTracing(c Commands, tracer trace.Tracer) Commands {
	if tracer == nil {
		return c
	}
	return &traced{next: c, tracer: tracer}
}

type traced struct {
	next   Commands
	tracer trace.Tracer
}

func (t *traced) run(ctx context.Context, op string, fn func(context.Context) error, attrs ...attribute.KeyValue) error {
	attrs = append(attrs, attribute.String(tracing.AttrCommand, op))
	return tracing.Run(ctx, t.tracer, tracing.SpanPrefixBackend+op, fn, attrs...)
}

func itemAttr(id string) attribute.KeyValue {
	return attribute.String(tracing.AttrItemID, id)
}

func (t *traced) ListItems(ctx context.Context, groupID, query string) (items []Item, err error) {
	err = t.run(ctx, "ListItems", func(ctx context.Context) error {
		items, err = t.next.ListItems(ctx, groupID, query)
		return err
	}, attribute.String(tracing.AttrGroupID, groupID))
	return items, err
}

func (t *traced) CreateItem(ctx context.Context, input ItemInput) (item Item, err error) {
	err = t.run(ctx, "CreateItem", func(ctx context.Context) error {
		item, err = t.next.CreateItem(ctx, input)
		return err
	})
	return item, err
}

func (t *traced) UpdateItem(ctx context.Context, input ItemUpdate) (item Item, err error) {
	err = t.run(ctx, "UpdateItem", func(ctx context.Context) error {
		item, err = t.next.UpdateItem(ctx, input)
		return err
	}, itemAttr(input.ID))
	return item, err
}

func (t *traced) DeleteItem(ctx context.Context, id string) error {
	return t.run(ctx, "DeleteItem", func(ctx context.Context) error {
		return t.next.DeleteItem(ctx, id)
	}, itemAttr(id))
}

func (t *traced) ClearItems(ctx context.Context) (n int, err error) {
	err = t.run(ctx, "ClearItems", func(ctx context.Context) error {
		n, err = t.next.ClearItems(ctx)
		return err
	})
	return n, err
}

func (t *traced) LaunchItem(ctx context.Context, id string) (item Item, err error) {
	err = t.run(ctx, "LaunchItem", func(ctx context.Context) error {
		item, err = t.next.LaunchItem(ctx, id)
		return err
	}, itemAttr(id))
	return item, err
}

func (t *traced) OpenItemLocation(ctx context.Context, id string) error {
	return t.run(ctx, "OpenItemLocation", func(ctx context.Context) error {
		return t.next.OpenItemLocation(ctx, id)
	}, itemAttr(id))
}

func (t *traced) RefreshItemIcon(ctx context.Context, id string) (item Item, err error) {
	err = t.run(ctx, "RefreshItemIcon", func(ctx context.Context) error {
		item, err = t.next.RefreshItemIcon(ctx, id)
		return err
	}, itemAttr(id))
	return item, err
}

func (t *traced) ListGroups(ctx context.Context) (groups []Group, err error) {
	err = t.run(ctx, "ListGroups", func(ctx context.Context) error {
		groups, err = t.next.ListGroups(ctx)
		return err
	})
	return groups, err
}

func (t *traced) CreateGroup(ctx context.Context, input GroupInput) (group Group, err error) {
	err = t.run(ctx, "CreateGroup", func(ctx context.Context) error {
		group, err = t.next.CreateGroup(ctx, input)
		return err
	})
	return group, err
}

func (t *traced) ScanShortcuts(ctx context.Context, roots []string) (res ScanResult, err error) {
	err = t.run(ctx, "ScanShortcuts", func(ctx context.Context) error {
		res, err = t.next.ScanShortcuts(ctx, roots)
		return err
	}, attribute.StringSlice(tracing.AttrScanRoots, roots))
	return res, err
}

func (t *traced) ListScanRoots(ctx context.Context) (roots []string, err error) {
	err = t.run(ctx, "ListScanRoots", func(ctx context.Context) error {
		roots, err = t.next.ListScanRoots(ctx)
		return err
	})
	return roots, err
}

func (t *traced) SyncIcons(ctx context.Context) (n int, err error) {
	err = t.run(ctx, "SyncIcons", func(ctx context.Context) error {
		n, err = t.next.SyncIcons(ctx)
		return err
	})
	return n, err
}

func (t *traced) ApplyHotkeys(ctx context.Context, bindings []HotkeyBinding) (res HotkeyApplyResult, err error) {
	err = t.run(ctx, "ApplyHotkeys", func(ctx context.Context) error {
		res, err = t.next.ApplyHotkeys(ctx, bindings)
		return err
	}, attribute.Int(tracing.AttrResultCount, len(bindings)))
	return res, err
}

func (t *traced) PickScanRoot(ctx context.Context) (path string, err error) {
	err = t.run(ctx, "PickScanRoot", func(ctx context.Context) error {
		path, err = t.next.PickScanRoot(ctx)
		return err
	})
	return path, err
}

func (t *traced) PickTargetPath(ctx context.Context) (path string, err error) {
	err = t.run(ctx, "PickTargetPath", func(ctx context.Context) error {
		path, err = t.next.PickTargetPath(ctx)
		return err
	})
	return path, err
}

func (t *traced) PickIconSource(ctx context.Context) (path string, err error) {
	err = t.run(ctx, "PickIconSource", func(ctx context.Context) error {
		path, err = t.next.PickIconSource(ctx)
		return err
	})
	return path, err
}
