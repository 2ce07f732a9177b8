package mcpserver

// PlannerGuide describes the planner's data model for LLM consumers.
const PlannerGuide = `# Weeks Planner Guide

The planner keeps two kinds of lists.

## Week lists

A week holds the goals and notes of seven consecutive days. Weeks start on the
configured start weekday. Any day inside a week addresses it: days are counted
from 1970-01-01 (day 0), so get_week with day 19917 returns the week containing
2024-07-13. New week items land on the middle day of their week.

## Year lists (objectives)

An objective belongs to a year of the main calendar and optionally to one
season (1-4) or one month (1-12), never both. Years are numbered in the main
calendar: 1403 is a Persian year, 2024 a Gregorian or Chinese one, 1446 an
Arabic (Hijri) one.

## Items

- kind: "goal" (can be done/undone) or "note".
- Items are ordered; use move_item to swap an item with its neighbour.
- toggle_item flips a goal between done and undone.

## Calendars

Gregorian, Persian (Solar Hijri), Chinese (lunisolar, 1901-2099 only) and
Arabic (tabular Hijri). Languages: en, fa, zh, ar. A calendar without names in
the requested language is rendered in English.
`
