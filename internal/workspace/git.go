package workspace

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	ferrors "git.home.luguber.info/inful/plantuml-generator/internal/foundation/errors"
	"git.home.luguber.info/inful/plantuml-generator/internal/logfields"
)

// GitDirectory is the cache subdirectory holding git artifacts.
const GitDirectory = "git"

// GitPath returns the checkout location of a git artifact.
func GitPath(cache string, a Artifact) string {
	return filepath.Join(cache, GitDirectory, filepath.FromSlash(a.Directory))
}

// installGit clones the repository, or fetches it when already present,
// and checks out Ref. Without a ref the default branch is pulled.
func (m *Manager) installGit(ctx context.Context, cache string, a Artifact) error {
	path := GitPath(cache, a)
	if m.cfg.Force {
		if err := os.RemoveAll(path); err != nil {
			return ferrors.FileSystemError("remove " + path).WithCause(err).Build()
		}
	}

	var (
		repo *git.Repository
		err  error
	)
	if exists(filepath.Join(path, ".git")) {
		repo, err = m.updateRepository(ctx, path, a)
	} else {
		repo, err = m.cloneRepository(ctx, path, a)
	}
	if err != nil {
		return err
	}

	if a.Ref != "" {
		if err := checkout(repo, a.Ref); err != nil {
			return ferrors.GitError("checkout " + a.Ref + " in " + path).WithCause(err).Build()
		}
	}
	if head, err := repo.Head(); err == nil {
		m.logger.Info("Repository installed",
			logfields.URL(a.URL),
			logfields.Path(path),
			slog.String("commit", head.Hash().String()[:8]))
	}
	return nil
}

func (m *Manager) cloneRepository(ctx context.Context, path string, a Artifact) (*git.Repository, error) {
	m.logger.Debug("Cloning repository", logfields.URL(a.URL), logfields.Path(path))
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, ferrors.FileSystemError("create " + filepath.Dir(path)).WithCause(err).Build()
	}
	repo, err := git.PlainCloneContext(ctx, path, false, &git.CloneOptions{URL: a.URL})
	if err != nil {
		_ = os.RemoveAll(path)
		return nil, ferrors.GitError("clone " + a.URL).WithCause(err).WithContext("url", a.URL).Build()
	}
	return repo, nil
}

func (m *Manager) updateRepository(ctx context.Context, path string, a Artifact) (*git.Repository, error) {
	m.logger.Debug("Updating repository", logfields.URL(a.URL), logfields.Path(path))
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, ferrors.GitError("open " + path).WithCause(err).Build()
	}
	if a.Ref != "" {
		err = repo.FetchContext(ctx, &git.FetchOptions{RemoteName: git.DefaultRemoteName, Force: true})
	} else {
		var wt *git.Worktree
		if wt, err = repo.Worktree(); err != nil {
			return nil, ferrors.GitError("open worktree " + path).WithCause(err).Build()
		}
		err = wt.PullContext(ctx, &git.PullOptions{RemoteName: git.DefaultRemoteName, Force: true})
	}
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil, ferrors.GitError("update " + a.URL).WithCause(err).WithContext("url", a.URL).Build()
	}
	return repo, nil
}

// checkout detaches the worktree at ref, which may name a tag, a commit
// or a local or remote branch.
func checkout(repo *git.Repository, ref string) error {
	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		remote, rerr := repo.ResolveRevision(plumbing.Revision(git.DefaultRemoteName + "/" + ref))
		if rerr != nil {
			return err
		}
		hash = remote
	}
	wt, err := repo.Worktree()
	if err != nil {
		return err
	}
	return wt.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true})
}
