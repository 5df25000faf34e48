package aggregate

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// FoldFuncs computes a node's value from its own item (leaves) or from its
// children's values (containers).
type FoldFuncs[T any] struct {
	Leaf      func(ctx context.Context, node *Node) (T, error)
	Container func(ctx context.Context, node *Node, children []T) (T, error)
}

// Fold evaluates the tree bottom-up. Up to parallelism siblings are evaluated
// concurrently; a parent runs only after all of its children finished. The
// context is checked before every node, so cancellation stops the fold between
// items. Children values are passed to Container in child order.
func Fold[T any](ctx context.Context, node *Node, funcs FoldFuncs[T], parallelism int) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	if node.IsLeaf() {
		return funcs.Leaf(ctx, node)
	}

	values := make([]T, len(node.Children))
	if parallelism <= 1 || len(node.Children) == 1 {
		for i, child := range node.Children {
			value, err := Fold(ctx, child, funcs, parallelism)
			if err != nil {
				return zero, err
			}
			values[i] = value
		}
	} else {
		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(parallelism)
		for i, child := range node.Children {
			group.Go(func() error {
				value, err := Fold(groupCtx, child, funcs, parallelism)
				if err != nil {
					return err
				}
				values[i] = value
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return zero, err
		}
	}

	if err := ctx.Err(); err != nil {
		return zero, err
	}
	return funcs.Container(ctx, node, values)
}
