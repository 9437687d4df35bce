package static

var (
	Part1 = `
    <!DOCTYPE html>
    <html>
    <head>
        <title>Voronoi sweep</title>
		<style>
			body {
				background-color: #1F1F1F;
				color: #d3d3d3;
				font-family: Consolas, monospace;
				overflow: hidden;
			}

			#container {
				display: flex;
				width: 100%;
				height: 100vh;
				box-sizing: border-box;
			}

			#left-container {
				width: 60%;
				padding: 10px;
				box-sizing: border-box;
				overflow-y: auto;
			}

			#right-container {
				width: 40%;
				padding: 10px;
				box-sizing: border-box;
				border-left: 5px solid #757575;
				overflow-y: auto;
				overflow-x: auto;
				background-color: #1e1e1e;
			}

			#logs {
				white-space: pre-wrap;
				word-wrap: break-word;
				color: #d3d3d3;
				font-family: Consolas, monospace;
			}

			form {
				display: inline-block;
				vertical-align: top;
				margin-right: 20px;
			}

			input[type="number"],
			input[type="submit"],
			select {
				background-color: #2b2b2b;
				color: #d3d3d3;
				border: 1px solid #444;
				padding: 5px;
				margin: 5px 0;
				border-radius: 4px;
			}

			label {
				color: #d3d3d3;
			}

			h1 {
				color: #d3d3d3;
			}

			input[type="submit"]:hover {
				background-color: #444;
				cursor: pointer;
			}

			::-webkit-scrollbar {
				width: 8px;
			}

			::-webkit-scrollbar-thumb {
				background-color: #444;
				border-radius: 10px;
			}

			::-webkit-scrollbar-track {
				background-color: #2b2b2b;
			}
        </style>
    </head>
    <body>
        <div id="container">
            <div id="left-container">
                <h1>Voronoi sweep</h1>
    `

	// Controls is a format string: sweep y, step, circles checked, parabolas
	// checked, site count.
	Controls = `
                <form class="sweep-form" action="/advance" method="POST">
                    <label>Sweep y: %.3f</label><br>
                    <label for="delta">Step:</label>
                    <input type="number" id="delta" name="delta" value="%g" step="any"><br>
                    <label><input type="checkbox" name="circles" value="on" %s> circles (c)</label>
                    <label><input type="checkbox" name="parabolas" value="on" %s> parabolas (p)</label><br>
                    <input type="submit" value="Advance">
                </form>
                <form class="sweep-form" action="/reset" method="POST">
                    <label for="layout">Sites:</label>
                    <select id="layout" name="layout">
                        <option value="default">default</option>
                        <option value="random">random</option>
                        <option value="grid">grid</option>
                    </select><br>
                    <label for="sites">Count:</label>
                    <input type="number" id="sites" name="sites" value="%d" min="1" max="200"><br>
                    <input type="submit" value="Reset">
                </form>
    `

	Part2 = `
            </div>
            <div id="right-container">
                <h1>Logs</h1>
                <div id="logs">`

	Part3 = `
                </div>
            </div>
        </div>

        <script>
            document.querySelectorAll('.sweep-form').forEach(function (form) {
                form.addEventListener('submit', function (e) {
                    e.preventDefault();
                    const params = new URLSearchParams(new FormData(this)).toString();

                    fetch(this.getAttribute('action'), {
                        method: 'POST',
                        body: params,
                        headers: {
                            'Content-Type': 'application/x-www-form-urlencoded'
                        }
                    })
                    .then(response => response.text())
                    .then(html => {
                        document.open();
                        document.write(html);
                        document.close();
                    })
                    .catch(error => {
                        console.error('Error:', error);
                    });
                });
            });
        </script>
    </body>
    </html>
    `
)
