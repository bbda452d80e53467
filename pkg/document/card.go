package document

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math/rand/v2"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	cardWidth  = 1200
	cardHeight = 900

	headerHeight = 60
	marginX      = 40
)

var (
	headerBlue = color.RGBA{R: 0x1e, G: 0x40, B: 0x7c, A: 0xff}
	pageGray   = color.RGBA{R: 0xf4, G: 0xf4, B: 0xf4, A: 0xff}
	textDark   = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	textMuted  = color.RGBA{R: 0x77, G: 0x77, B: 0x77, A: 0xff}
	lineGray   = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	badgeGreen = color.RGBA{R: 0x00, G: 0x7a, B: 0x5e, A: 0xff}
)

var majors = []string{
	"Computer Science (BS)",
	"Software Engineering (BS)",
	"Information Sciences and Technology (BS)",
	"Data Science (BS)",
	"Electrical Engineering (BS)",
	"Mechanical Engineering (BS)",
	"Business Administration (BS)",
	"Psychology (BA)",
	"Biology (BS)",
	"Mathematics (BS)",
}

type scheduleRow struct {
	classNbr, course, title, times, room, units string
}

var schedule = []scheduleRow{
	{"14920", "CMPSC 465", "Data Structures and Algorithms", "MoWeFr 10:10AM - 11:00AM", "Willard 062", "3.00"},
	{"18233", "MATH 230", "Calculus and Vector Analysis", "TuTh 1:35PM - 2:50PM", "Thomas 102", "4.00"},
	{"20491", "CMPSC 473", "Operating Systems Design", "MoWe 2:30PM - 3:45PM", "Westgate E201", "3.00"},
	{"11029", "ENGL 202C", "Technical Writing", "Fr 1:25PM - 2:15PM", "Boucke 304", "3.00"},
	{"15502", "STAT 318", "Elementary Probability", "TuTh 9:05AM - 10:20AM", "Osmond 112", "3.00"},
}

// PortalRenderer renders a student-information-system screenshot lookalike:
// header bar, student summary, and a class schedule table.
type PortalRenderer struct{}

// NewPortalRenderer creates the default renderer.
func NewPortalRenderer() *PortalRenderer {
	return &PortalRenderer{}
}

// NewStudentID produces a random 9-digit student id starting with 9.
func NewStudentID() string {
	return fmt.Sprintf("9%08d", rand.IntN(100000000))
}

// Render draws the card and encodes it as PNG.
func (pr *PortalRenderer) Render(data CardData) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, cardWidth, cardHeight))

	// Page background and header bar.
	draw.Draw(img, img.Bounds(), image.NewUniform(pageGray), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 0, cardWidth, headerHeight), image.NewUniform(headerBlue), image.Point{}, draw.Src)

	fullName := data.FirstName + " " + data.LastName
	studentID := NewStudentID()
	major := majors[rand.IntN(len(majors))]
	now := time.Now().Format("01/02/2006, 3:04:05 PM")

	drawText(img, marginX, 38, color.White, "University Portal  |  Student Information System")
	drawText(img, cardWidth-360, 38, color.White, "Welcome, "+fullName+"  |  Sign Out")

	drawText(img, marginX, 110, headerBlue, "My Class Schedule")
	drawText(img, cardWidth-380, 110, textDark, "Term: Fall "+fmt.Sprint(time.Now().Year())+" (Aug 25 - Dec 12)")
	hline(img, 125, lineGray)

	// Student summary block.
	labels := []struct{ label, value string }{
		{"STUDENT NAME", fullName},
		{"STUDENT ID", studentID},
		{"ACADEMIC PROGRAM", major},
		{"ENROLLMENT STATUS", "ENROLLED"},
	}
	for i, f := range labels {
		x := marginX + i*280
		drawText(img, x, 170, textMuted, f.label)
		if f.label == "ENROLLMENT STATUS" {
			drawText(img, x, 195, badgeGreen, f.value)
		} else {
			drawText(img, x, 195, textDark, f.value)
		}
	}
	hline(img, 220, lineGray)

	drawText(img, marginX, 255, textMuted,
		fmt.Sprintf("University: %s  |  School ID: %s  |  Data retrieved: %s", data.SchoolName, data.SchoolID, now))

	// Schedule table.
	headers := []string{"Class Nbr", "Course", "Title", "Days & Times", "Room", "Units"}
	cols := []int{marginX, marginX + 110, marginX + 240, marginX + 620, marginX + 880, marginX + 1020}
	y := 300
	for i, h := range headers {
		drawText(img, cols[i], y, textMuted, h)
	}
	hline(img, y+12, lineGray)
	y += 45
	for _, row := range schedule {
		cells := []string{row.classNbr, row.course, row.title, row.times, row.room, row.units}
		for i, cell := range cells {
			c := textDark
			if i == 1 {
				c = headerBlue
			}
			drawText(img, cols[i], y, c, cell)
		}
		hline(img, y+12, lineGray)
		y += 42
	}

	drawText(img, marginX, cardHeight-60, textMuted,
		fmt.Sprintf("(c) %d %s. All rights reserved.", time.Now().Year(), data.SchoolName))
	drawText(img, marginX, cardHeight-40, textMuted,
		"Student Information System - Verification ID: "+data.SchoolID)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode card png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawText(img draw.Image, x, y int, c color.Color, s string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func hline(img *image.RGBA, y int, c color.Color) {
	draw.Draw(img, image.Rect(marginX, y, cardWidth-marginX, y+1), image.NewUniform(c), image.Point{}, draw.Src)
}
