// Package bcsv exports a parsed file as CSV tables: one row per joint for the
// hierarchy, one row per frame for the channel curves.
package bcsv

import (
	"encoding/csv"
	"fmt"
	"io"

	"bvhkit/bvh"
	"bvhkit/bvh/bjoint"
	"bvhkit/bvh/btoken"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

const (
	FileNameHierarchy = "hierarchy.csv"
	FileNameChannels  = "channels.csv"

	ColumnTime = "time"
	// EndSiteSuffix names the extra hierarchy row of a joint's end site.
	EndSiteSuffix = "_End"
)

var HierarchyHeader = []string{"joint", "parent", "offset.x", "offset.y", "offset.z"}

func formatFloat(v float64, bitSize int) string {
	return btoken.FormatFloat(v, -1, bitSize)
}

func offsetColumns(p bjoint.Point) []string {
	return []string{
		formatFloat(float64(p.X), 32),
		formatFloat(float64(p.Y), 32),
		formatFloat(float64(p.Z), 32),
	}
}

// HierarchyRows lists joints in pre-order. With endSites, each end site gets
// its own row right after the joint that owns it.
func HierarchyRows(f *bvh.File, endSites bool) [][]string {
	rows := make([][]string, 0, f.NumJoints())
	for i, joint := range f.Joints() {
		parentName := ""
		if parent, ok := f.Parent(i); ok {
			parentName = parent.Name
		}
		rows = append(rows, append([]string{joint.Name, parentName}, offsetColumns(joint.Offset)...))
		if endSites && joint.EndSite != nil {
			rows = append(rows, append([]string{joint.Name + EndSiteSuffix, joint.Name}, offsetColumns(*joint.EndSite)...))
		}
	}
	return rows
}

// ChannelColumn names the column of a channel, such as "Hips.Xposition".
func ChannelColumn(joint bjoint.Joint, channel bjoint.Channel) string {
	return fmt.Sprintf("%s.%s", joint.Name, channel.Type)
}

func ChannelsHeader(f *bvh.File) []string {
	header := []string{ColumnTime}
	for _, joint := range f.Joints() {
		header = append(
			header,
			lo.Map(
				joint.Channels,
				func(channel bjoint.Channel, _ int) string { return ChannelColumn(joint, channel) },
			)...,
		)
	}
	return header
}

// ChannelsRows has one row per frame; the first column is the frame's start
// time in seconds.
func ChannelsRows(f *bvh.File) [][]string {
	return lo.Map(
		f.Frames(),
		func(frame []float32, i int) []string {
			row := make([]string, 0, len(frame)+1)
			row = append(row, formatFloat(float64(i)*f.FrameTime(), 64))
			for _, v := range frame {
				row = append(row, formatFloat(float64(v), 32))
			}
			return row
		},
	)
}

func WriteHierarchy(w io.Writer, f *bvh.File, endSites bool) error {
	return writeAll(w, HierarchyHeader, HierarchyRows(f, endSites), "WriteHierarchy")
}

func WriteChannels(w io.Writer, f *bvh.File) error {
	return writeAll(w, ChannelsHeader(f), ChannelsRows(f), "WriteChannels")
}

func writeAll(w io.Writer, header []string, rows [][]string, caller string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return errors.Wrapf(err, "%s error", caller)
	}
	if err := writer.WriteAll(rows); err != nil {
		return errors.Wrapf(err, "%s error", caller)
	}
	return nil
}
