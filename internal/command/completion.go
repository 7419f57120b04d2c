// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/nixtm/nix-timemach/internal/meta"
)

const bashCompletionScript = `# bash completion for nix-timemach
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_nix_timemach()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "list-generations diff completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--attrs -a --color -c --filter -f --local -l --output -o --padding --sort -s --titles -t --tldr"
    local listing="--format --profile -p --profiles --source --strict --timeout"

    case "$prev" in
        --output|-o)
            if [[ "$cmd" == "diff" ]]; then
                COMPREPLY=( $(compgen -W "text json raw yaml delta" -- "$cur") )
            else
                COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
            fi
            return 0
            ;;
        --source)
            COMPREPLY=( $(compgen -W "nix-env nixos-rebuild" -- "$cur") )
            return 0
            ;;
        --format)
            COMPREPLY=( $(compgen -W "clean marked" -- "$cur") )
            return 0
            ;;
        --resolve)
            COMPREPLY=( $(compgen -W "link store" -- "$cur") )
            return 0
            ;;
        --classify)
            COMPREPLY=( $(compgen -W "heuristic tool" -- "$cur") )
            return 0
            ;;
        --profile|-p|--profiles)
            COMPREPLY=( $(compgen -o filenames -f -- "$cur") )
            return 0
            ;;
    esac

    case "$cmd" in
        list-generations)
            COMPREPLY=( $(compgen -W "$common $listing" -- "$cur") )
            ;;
        diff)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=( $(compgen -W "$common $listing --classify --resolve" -- "$cur") )
            else
                COMPREPLY=( $(compgen -W "current current~1 0" -- "$cur") )
            fi
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            ;;
    esac
    return 0
}

complete -F _nix_timemach nix-timemach
`

const zshCompletionScript = `#compdef nix-timemach

_nix_timemach() {
  local -a cmds
  cmds=(
    'list-generations:list system profile generations'
    'diff:show what changed between two generations'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-l --local)'{-l,--local}'[show local timestamps]'
  '--padding[spaces between text columns]:padding'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  '--format[listing line format]:format:(clean marked)'
  '(-p --profile)'{-p,--profile}'[profile to list]:profile:_files'
  '--profiles[profile links directory]:directory:_directories'
  '--source[listing command]:source:(nix-env nixos-rebuild)'
  '--strict[fail on malformed listing lines]'
  '--timeout[toolchain command timeout]:duration'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'nix-timemach commands' cmds
    return
  fi

  case $words[2] in
    list-generations)
      _arguments -C \
        $common \
        '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
      ;;
    diff)
      _arguments -C \
        $common \
        '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml delta)' \
        '--classify[classification strategy]:classify:(heuristic tool)' \
        '--resolve[resolution strategy]:resolve:(link store)' \
        '1::from:(current current~1 0)' \
        '2::to:(current 0)'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _nix_timemach nix-timemach
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := Writer(cmd)

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	case "":
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(w, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(w, bashCompletionScript)
		default:
			return fmt.Errorf("usage: nix-timemach completion [bash|zsh]")
		}
	default:
		return fmt.Errorf("unsupported shell %q: usage: nix-timemach completion [bash|zsh]", shell)
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "nix-timemach completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
