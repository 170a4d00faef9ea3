// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/txtctl/internal/meta"
)

const bashCompletionScript = `# bash completion for txtctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_txtctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "get dump diff browse completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local store="--base -b --format --source --bucket --prefix --region --profile --endpoint --blank --tldr"
    local rows="--color -c --filter -f --output -o --sort -s --titles -t"

    case "$cmd" in
        get)
            local opts="$store --default -d --log -l --warn -W --strict"
            ;;
        dump)
            local opts="$store $rows --summary"
            ;;
        diff)
            local opts="$store --report -r --color -c --output -o"
            ;;
        browse)
            local opts="$store"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$store"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
            return 0
            ;;
        --format)
            COMPREPLY=( $(compgen -W "yaml json hcl" -- "$cur") )
            return 0
            ;;
        --source)
            COMPREPLY=( $(compgen -W "fs s3" -- "$cur") )
            return 0
            ;;
        --blank)
            COMPREPLY=( $(compgen -W "fallback verbatim" -- "$cur") )
            return 0
            ;;
        --log|-l)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
    esac

    # Flags when asked for, otherwise the base directory positional.
    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -o dirnames -- "$cur") )
    return 0
}

complete -F _txtctl txtctl
`

const zshCompletionScript = `#compdef txtctl

_txtctl() {
  local -a cmds
  cmds=(
    'get:print one text'
    'dump:print a table'
    'diff:compare a table under two bases'
    'browse:interactive table viewer'
    'completion:generate shell completion script'
  )

  local -a store
  store=(
    '(-b --base)'{-b,--base}'[base path]:base:_directories'
    '--format[table format]:format:(yaml json hcl)'
    '--source[table source]:source:(fs s3)'
    '--bucket[S3 bucket]:bucket'
    '--prefix[S3 key prefix]:prefix'
    '--region[AWS region]:region'
    '--profile[AWS profile]:profile'
    '--endpoint[S3 endpoint]:url'
    '--blank[empty value treatment]:blank:(fallback verbatim)'
    '--tldr[show tldr page]'
  )

  local -a rows
  rows=(
    '(-c --color)'{-c,--color}'[enable colored text]'
    '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
    '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
    '(-s --sort)'{-s,--sort}'[sort columns]:columns:(key value -key -value)'
    '(-t --titles)'{-t,--titles}'[show titles]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'txtctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    get)
      _arguments -C \
        $store \
        '(-d --default)'{-d,--default}'[fallback text]:text' \
        '(-l --log)'{-l,--log}'[warning log file]:file:_files' \
        '(-W --warn)'{-W,--warn}'[print warnings]' \
        '--strict[exit 3 on fallback]' \
        '1:base:_directories' '2:file' '3:key'
      ;;
    dump)
      _arguments -C \
        $store \
        $rows \
        '--summary[print key count and size]' \
        '1:base:_directories' '2:file'
      ;;
    diff)
      _arguments -C \
        $store \
        '(-r --report)'{-r,--report}'[list keys by difference]' \
        '(-c --color)'{-c,--color}'[enable colored delta]' \
        '(-o --output)'{-o,--output}'[report format]:format:(text json yaml)' \
        '1:left base:_directories' '2:right base:_directories' '3:file'
      ;;
    browse)
      _arguments -C \
        $store \
        '1:base:_directories' '2:file'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $store '*:directory:_directories'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _txtctl txtctl
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}

	w := stdout(cmd)
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(w, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(w, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: txtctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "txtctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
