package impl

import (
	"html/template"
	"strings"

	"moducare/internal/domain/entity"

	"github.com/pkg/errors"
)

// defaultCareText is the canned advice paragraph used when a record carries
// no manage comment.
const defaultCareText = `첫째, 두피를 깨끗하게 유지하려면 적어도 주 2-3회 샴푸로 세척해줘야 해요. 둘째, 너무 뜨거운 물보다는 미지근한 물을 사용하는 게 좋아요. 셋째, 각질 제거를 위해 주 1회 스크럽이나 두피 마스크를 사용해보세요.

또한, 두피도 보습이 필요하니까 두피 전용 오일이나 세럼을 사용해 보습해주는 게 좋고요. 건강한 모발을 위해 균형 잡힌 식사를 하고, 스트레스는 운동이나 명상으로 관리해보세요. 자외선 차단도 잊지 말고, 마지막으로 두피 마사지를 통해 혈액순환을 촉진해주면 도움이 됩니다.`

// reportBar is one severity bar of the rendered graph.
type reportBar struct {
	Label  string
	Value  int
	Height int // Value scaled linearly to pixels.
}

// reportSheetData is the template input for one report sheet.
type reportSheetData struct {
	Name          string
	Birth         string
	Email         string
	Date          string
	ImageURL      string
	HeadTypeLabel string
	Comparison    string
	ManageComment string
	Bars          []reportBar
	QRDataURI     template.URL
}

var reportSheetTemplate = template.Must(template.New("reportSheet").Parse(`<html>
  <head>
    <meta charset="utf-8">
    <style>
      body { font-family: Arial, sans-serif; margin: 0; padding: 0; }
      h2 { display: flex; justify-content: center; align-items: center; font-size: 40px; }
      h3 { font-size: 30px; }
      h4 { font-size: 20px; }
      span { color: #946038; }
      @page { margin: 2cm; }
      #paper { width: 21cm; min-height: 29.7cm; padding: 1.5cm; page-break-after: always; }
      #pictureContainer { display: flex; justify-content: space-around; align-items: center; gap: 20px; margin-top: 2cm; margin-bottom: 2cm; }
      #pictureContainer img { height: 300px; border-radius: 10px; width: 350px; }
      #result-graph { display: flex; flex-direction: row; justify-content: center; align-items: flex-end; gap: 50px; margin-top: 2cm; margin-bottom: 2cm; }
      #result-graph .gb { display: flex; flex-direction: column; align-items: center; }
      #result-graph .bar { width: 30px; background-color: #72635A; border-radius: 5px; }
      .manage-comment { white-space: pre-line; line-height: 1.5; }
      #qr { display: flex; justify-content: center; }
      #qr img { width: 120px; height: 120px; }
    </style>
  </head>
  <body>
    <div id="paper">
      <h2>ModuCare 두피 진단 결과지</h2>
      <div id="pictureContainer">
        <div>
          <h3>사용자 정보</h3>
          <h4>
            사용자 이름 : {{.Name}}
            <br>
            생년월일 : {{.Birth}}
            <br>
            이메일 : {{.Email}}
            <br>
            진단일시 : {{.Date}}
          </h4>
        </div>
        <div>
          <img class="picture diagnosis" src="{{.ImageURL}}" alt="...">
        </div>
      </div>
      <div id="pictureContainer">
        <h3>AI 두피 진단 결과 <span>{{.HeadTypeLabel}}</span>입니다.</h3>
      </div>
      <div id="result-graph">
        {{range .Bars}}
        <div class="gb">
          <div>{{.Value}}</div>
          <div class="bar" style="height: {{.Height}}px;"></div>
          <h5>{{.Label}}</h5>
        </div>
        {{end}}
      </div>
      <div class="RecommendContainer">
        <h4>MODU가 관찰한 최근 두피 검사 결과</h4>
        <h3><span>{{.Comparison}}</span></h3>
        <h2>MODU가 추천하는 관리비결</h2>
        <h4 class="manage-comment">{{.ManageComment}}</h4>
      </div>
      {{if .QRDataURI}}
      <div id="qr">
        <img src="{{.QRDataURI}}" alt="report link">
      </div>
      {{end}}
    </div>
  </body>
</html>
`))

// buildReportSheet interpolates the fixed template. Absent optional fields
// become empty strings or the canned care paragraph; the output never
// contains a literal placeholder word.
func buildReportSheet(profile entity.UserProfile, record *entity.DiagnosisRecord, projected entity.ProjectedResult, barScale int, qrDataURI string) (string, error) {
	data := reportSheetData{
		Name:          profile.Name,
		Birth:         profile.BirthDate,
		Email:         profile.Email,
		HeadTypeLabel: projected.HeadTypeLabel,
		Comparison:    projected.ComparisonLabel,
		ManageComment: defaultCareText,
		QRDataURI:     template.URL(qrDataURI),
	}
	if record != nil {
		data.Date = record.Date
		data.ImageURL = record.ImageURL
		if record.ManageComment != "" {
			data.ManageComment = record.ManageComment
		}
	}

	data.Bars = make([]reportBar, 0, len(projected.ChartSeries))
	for _, point := range projected.ChartSeries {
		data.Bars = append(data.Bars, reportBar{
			Label:  point.Label,
			Value:  point.Value,
			Height: point.Value * barScale,
		})
	}

	var sheet strings.Builder
	if err := reportSheetTemplate.Execute(&sheet, data); err != nil {
		return "", errors.Wrap(err, "execute report sheet template")
	}

	return sheet.String(), nil
}
