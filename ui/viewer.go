package ui

import (
	"fmt"
	"strings"

	"bvhkit/bvh"
	"bvhkit/bvh/bjoint"
	"bvhkit/bvh/btoken"
	"bvhkit/ds"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
)

// framesPerPage is how far pgup/pgdown move the frame cursor.
const framesPerPage = 10

const valuePrecision = 3

// Viewer lists the joints of a file with their channel values at the current
// frame. Up and down select a joint, left and right move between frames. A
// file without frames is frozen: the frame cursor stays at 0.
type Viewer struct {
	title  string
	file   *bvh.File
	joint  int
	frame  int
	frozen bool
}

func CreateViewer(title string, f *bvh.File) Viewer {
	return Viewer{
		title:  title,
		file:   f,
		frozen: f.FrameCount() == 0,
	}
}

func (s Viewer) Joint() int {
	return s.joint
}

func (s Viewer) Frame() int {
	return s.frame
}

func (s Viewer) moveJoint(delta int) Viewer {
	s.joint = ds.Clamp(s.joint+delta, 0, s.file.NumJoints()-1)
	return s
}

func (s Viewer) moveFrame(delta int) Viewer {
	if s.frozen {
		return s
	}
	s.frame = ds.Clamp(s.frame+delta, 0, s.file.FrameCount()-1)
	return s
}

func (s Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch keyMsg.String() {
	case "q", "esc", "ctrl+c":
		return s, tea.Quit
	case "up", "k":
		return s.moveJoint(-1), nil
	case "down", "j":
		return s.moveJoint(1), nil
	case "left", "h":
		return s.moveFrame(-1), nil
	case "right", "l":
		return s.moveFrame(1), nil
	case "pgup":
		return s.moveFrame(-framesPerPage), nil
	case "pgdown":
		return s.moveFrame(framesPerPage), nil
	case "home":
		return s.moveFrame(-s.file.FrameCount()), nil
	case "end":
		return s.moveFrame(s.file.FrameCount()), nil
	}
	return s, nil
}

func (s Viewer) Init() tea.Cmd {
	return nil
}

func (s Viewer) View() string {
	builder := strings.Builder{}
	builder.WriteString(s.title + "\n\n")
	if s.frozen {
		builder.WriteString("No frames\n\n")
	} else {
		builder.WriteString(fmt.Sprintf(
			"Frame %d/%d  %.3fs\n\n",
			s.frame+1,
			s.file.FrameCount(),
			float64(s.frame)*s.file.FrameTime(),
		))
	}

	for i, joint := range s.file.Joints() {
		cursor := "  "
		if i == s.joint {
			cursor = "> "
		}
		builder.WriteString(cursor)
		builder.WriteString(strings.Repeat("  ", joint.Depth))
		builder.WriteString(joint.Name)
		if i == s.joint {
			builder.WriteString("  " + s.describeChannels(joint))
		}
		builder.WriteString("\n")
	}

	builder.WriteString("\n↑/↓ joint  ←/→ frame  pgup/pgdown ±10  home/end  q quit\n")
	return builder.String()
}

func (s Viewer) describeChannels(joint bjoint.Joint) string {
	if len(joint.Channels) == 0 {
		return "(no channels)"
	}
	return strings.Join(
		lo.Map(
			joint.Channels,
			func(channel bjoint.Channel, _ int) string {
				if s.frozen {
					return channel.Type.String()
				}
				value, _ := s.file.Sample(s.frame, channel)
				return fmt.Sprintf("%s=%s", channel.Type, btoken.FormatFloat(float64(value), valuePrecision, 32))
			},
		),
		" ",
	)
}
