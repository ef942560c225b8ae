package cli

import "io"

// ShowHelp prints usage information for the reporter.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `FOGIS Match Reporter
====================

Reports match events, period boundaries and results for one match.

Usage:
  reporter [options] <command> [arguments]

Options:
  -match int
        Match id to report for (required except for "matches")
  -log string
        Also write logs to this file
  -json
        Log as JSON
  -help
        Show this help message

Commands:
  matches                         List matches assigned to the referee
  events                          Show the match timeline and score
  refresh                         Re-read the timeline from the store
  boundary <minute>               Record the boundary the minute implies
  period-end <minute>             End the period the minute falls in
  game-end <minute>               End the game (ends the period first)
  event <team> <type> <jersey> <minute> [jersey-out]
                                  Record a goal, card or substitution.
                                  team is 1 (home) or 2 (away); type is one of
                                  goal, header, corner, free-kick, own-goal,
                                  penalty, yellow, second-yellow, red-denying,
                                  red, substitution or a numeric type id
  staff <team> <official-id> <role-id> <actions> [minute]
                                  Caution or dismiss a team official.
                                  actions is a comma separated list of
                                  caution, minor and severe; dismissals
                                  need a minute
  results <ht-home> <ht-away> <ft-home> <ft-away>
                                  Submit halftime and fulltime and verify them
  clear                           Delete every event of the match

Minutes are plain ("67") or with stoppage ("45+2").

Configuration is read from FOGIS_CONFIG (YAML) and FOGIS_* variables.
FOGIS_USERNAME and FOGIS_PASSWORD are required.

Examples:
  reporter -match 6169105 event 1 goal 9 23
  reporter -match 6169105 boundary 45+2
  reporter -match 6169105 game-end 90+4
  reporter -match 6169105 staff 2 7002 1 caution,minor 63
  reporter -match 6169105 results 1 0 2 1
`)
}
