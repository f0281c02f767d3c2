// Package discover provides convention-based discovery of team and
// module directories.
//
// It scans a repository root for directories of the form:
//
//	modules_<team>/<module>/index.py
//
// Directories named modules_<team> are teams; their immediate
// subdirectories containing an index.py file are modules. Everything
// else is skipped without error.
package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"go.uber.org/zap"

	teamsynth "github.com/scalestack/teamsynth"
)

// EntryPoint is the file a module directory must contain to be deployed.
const EntryPoint = "index.py"

// teamPattern matches team directory names. The captured group is the
// team identifier: lowercase, alphanumeric and underscore, starting
// with a letter.
var teamPattern = regexp.MustCompile(`^modules_([a-z][a-z0-9_]*)$`)

// Teams enumerates the immediate children of root and returns one Team
// per directory matching the modules_<team> convention.
//
// The returned order is the enumeration order of the underlying
// filesystem; callers must not rely on it. An empty slice is a valid
// result and means there is nothing to deploy. The only error condition
// is a root that cannot be read.
func Teams(root string) ([]teamsynth.Team, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading root directory %s: %w", root, err)
	}

	var teams []teamsynth.Team
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		m := teamPattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		name := m[1]
		teams = append(teams, teamsynth.Team{
			Name: name,
			Dir:  filepath.Join(root, entry.Name()),
		})
		zap.S().Debugf("discovered team %s -> %s/", name, entry.Name())
	}

	return teams, nil
}

// Modules enumerates the immediate children of a team directory and
// returns one Module per subdirectory containing an index.py file
// directly inside it. A nested entry point (sub/index.py) does not
// qualify. Non-qualifying children are skipped without error.
func Modules(team teamsynth.Team) ([]teamsynth.Module, error) {
	entries, err := os.ReadDir(team.Dir)
	if err != nil {
		return nil, fmt.Errorf("reading team directory %s: %w", team.Dir, err)
	}

	var modules []teamsynth.Module
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(team.Dir, entry.Name())
		info, err := os.Stat(filepath.Join(dir, EntryPoint))
		if err != nil || info.IsDir() {
			continue
		}
		modules = append(modules, teamsynth.Module{
			Name: entry.Name(),
			Team: team.Name,
			Dir:  dir,
		})
	}

	return modules, nil
}
